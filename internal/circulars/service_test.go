package circulars

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/joseph-ayodele/event-circulars/constants"
	"github.com/joseph-ayodele/event-circulars/internal/common"
	"github.com/joseph-ayodele/event-circulars/internal/entity"
	"github.com/joseph-ayodele/event-circulars/internal/export"
	"github.com/joseph-ayodele/event-circulars/internal/llm"
	"github.com/joseph-ayodele/event-circulars/internal/metrics"
)

const modelAnswer = "```json\n" + `{
  "event_title": "Workshop on Artificial Intelligence",
  "date_time": "12 January 2025, 10:00 AM",
  "venue": "Computer Lab 3",
  "event_description": "A hands-on workshop.",
  "number_of_participants": "Not Provided",
  "event_type": "Workshop",
  "duration": "3 hours",
  "rules": ["Carry ID cards."],
  "judging_criteria": [],
  "coordinators": ["Alice", "Bob"],
  "convenor": "Dr. Rao"
}` + "\n```"

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newService(t *testing.T, answer llm.CompleterFunc, cfg Config) *Service {
	t.Helper()
	ex, err := llm.NewExtractor(answer, quiet())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = t.TempDir()
	}
	return NewService(ex, export.NewRenderer("", quiet()), cfg, metrics.New(prometheus.NewRegistry()), quiet())
}

func reply(s string) llm.CompleterFunc {
	return func(context.Context, string) (string, error) { return s, nil }
}

func TestGenerate_AIWorkshop(t *testing.T) {
	svc := newService(t, reply(modelAnswer), Config{})

	res, err := svc.Generate(context.Background(), entity.CircularInput{Text: "AI workshop 12 jan lab 3, coords alice bob, convenor dr rao"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := entity.EventCircular{
		EventTitle:           "Workshop on Artificial Intelligence",
		DateTime:             "12 January 2025, 10:00 AM",
		Venue:                "Computer Lab 3",
		EventDescription:     "A hands-on workshop.",
		NumberOfParticipants: "Not Provided",
		EventType:            "Workshop",
		Duration:             "3 hours",
		Rules:                []string{"Carry ID cards."},
		JudgingCriteria:      []string{},
		Coordinators:         []string{"Alice", "Bob"},
		Convenor:             "Dr. Rao",
	}
	if diff := cmp.Diff(want, res.Circular); diff != "" {
		t.Errorf("circular (-want +got):\n%s", diff)
	}
	if res.RequestID == "" {
		t.Error("empty request id")
	}
	base := filepath.Base(res.Path)
	if !strings.HasPrefix(base, constants.OutputFilePrefix) || filepath.Ext(base) != ".docx" {
		t.Errorf("unexpected output name %q", base)
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Fatalf("output missing: %v", err)
	}

	svc.Discard(res)
	if _, err := os.Stat(res.Path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output not removed: %v", err)
	}
}

const aiWorkshopAnswer = `{
  "event_title": "AI Workshop",
  "date_time": "10 February 2025, 3:00 PM to 6:00 PM",
  "venue": "Auditorium",
  "event_description": "An AI workshop open to all students.",
  "number_of_participants": "Not Provided",
  "event_type": "Workshop",
  "duration": "3 hours",
  "rules": [],
  "judging_criteria": ["Creativity", "Execution"],
  "coordinators": ["Alice", "Bob"],
  "convenor": "Dr. Smith"
}`

// docxParagraphs returns the text and style id of each paragraph in the
// document body.
func docxParagraphs(t *testing.T, path string) (texts, styles []string) {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open docx: %v", err)
	}
	defer zr.Close()
	var body []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		body, _ = io.ReadAll(rc)
		_ = rc.Close()
	}
	if body == nil {
		t.Fatal("word/document.xml missing")
	}

	var text, style string
	inT := false
	dec := xml.NewDecoder(bytes.NewReader(body))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("document.xml: %v", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				text, style = "", ""
			case "pStyle":
				for _, a := range el.Attr {
					if a.Name.Local == "val" {
						style = a.Value
					}
				}
			case "t":
				inT = true
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "p":
				texts = append(texts, text)
				styles = append(styles, style)
			case "t":
				inT = false
			}
		case xml.CharData:
			if inT {
				text += string(el)
			}
		}
	}
	return texts, styles
}

func TestGenerate_AIWorkshopDocument(t *testing.T) {
	svc := newService(t, reply(aiWorkshopAnswer), Config{})
	in := entity.CircularInput{Text: "AI Workshop on Feb 10 2025, 3pm-6pm in Auditorium, open to all students, " +
		"judged on creativity and execution, coordinators Alice and Bob, convenor Dr. Smith"}

	res, err := svc.Generate(context.Background(), in)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer svc.Discard(res)

	c := res.Circular
	if c.EventTitle != "AI Workshop" || c.Duration != "3 hours" || c.NumberOfParticipants != constants.NotProvided || c.Convenor != "Dr. Smith" {
		t.Errorf("unexpected circular %+v", c)
	}
	if diff := cmp.Diff([]string{"Alice", "Bob"}, c.Coordinators); diff != "" {
		t.Errorf("coordinators (-want +got):\n%s", diff)
	}

	texts, styles := docxParagraphs(t, res.Path)
	// Headings carry a paragraph style; body text and spacers do not.
	var headings []string
	coordinators := ""
	for i, text := range texts {
		if styles[i] != "" && styles[i] != "ListBullet" {
			headings = append(headings, text)
		}
		if text == "Coordinators" && i+1 < len(texts) {
			coordinators = texts[i+1]
		}
	}
	want := []string{"Event Description", "Judging Criteria", "Coordinators", "Convenor"}
	if diff := cmp.Diff(want, headings); diff != "" {
		t.Errorf("headings (-want +got):\n%s", diff)
	}
	if coordinators != "Alice, Bob" {
		t.Errorf("coordinators paragraph = %q, want %q", coordinators, "Alice, Bob")
	}
}

func TestGenerate_UniquePaths(t *testing.T) {
	svc := newService(t, reply(modelAnswer), Config{})
	a, err := svc.Generate(context.Background(), entity.CircularInput{Text: "x"})
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Generate(context.Background(), entity.CircularInput{Text: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if a.Path == b.Path {
		t.Errorf("paths collide: %s", a.Path)
	}
}

func TestGenerate_Errors(t *testing.T) {
	cases := []struct {
		name    string
		answer  llm.CompleterFunc
		cfg     Config
		text    string
		sent    error
		outcome constants.Outcome
		status  int
	}{
		{
			name:    "prose",
			answer:  reply("Sure, here is your circular!"),
			sent:    common.ErrMalformedOutput,
			outcome: constants.OutcomeMalformed,
			status:  400,
		},
		{
			name: "provider down",
			answer: func(context.Context, string) (string, error) {
				return "", errors.New("503 service unavailable")
			},
			sent:    common.ErrGeneration,
			outcome: constants.OutcomeGeneration,
			status:  500,
		},
		{
			name:    "too long",
			answer:  reply(modelAnswer),
			cfg:     Config{MaxInputChars: 5},
			text:    "more than five",
			sent:    common.ErrInvalidInput,
			outcome: constants.OutcomeBadRequest,
			status:  400,
		},
		{
			name:    "unwritable dir",
			answer:  reply(modelAnswer),
			cfg:     Config{OutputDir: filepath.Join(os.TempDir(), "does-not-exist-circulars", "x")},
			sent:    common.ErrRender,
			outcome: constants.OutcomeRender,
			status:  500,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newService(t, tc.answer, tc.cfg)
			res, err := svc.Generate(context.Background(), entity.CircularInput{Text: tc.text})
			if res != nil {
				t.Errorf("unexpected result %+v", res)
			}
			if !errors.Is(err, tc.sent) {
				t.Fatalf("err = %v, want %v", err, tc.sent)
			}
			if got := OutcomeFor(err); got != tc.outcome {
				t.Errorf("outcome = %s, want %s", got, tc.outcome)
			}
			if got := common.HTTPStatus(err); got != tc.status {
				t.Errorf("status = %d, want %d", got, tc.status)
			}
		})
	}
}

func TestGenerate_UsesContextRequestID(t *testing.T) {
	svc := newService(t, reply(modelAnswer), Config{})
	ctx := common.WithRequestID(context.Background(), "req-123")
	res, err := svc.Generate(ctx, entity.CircularInput{Text: "x"})
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Discard(res)
	if res.RequestID != "req-123" {
		t.Errorf("request id = %q", res.RequestID)
	}
	if strings.Contains(res.Path, "req-123") {
		t.Error("client request id must not reach the filesystem path")
	}
}
