package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	pdfreader "github.com/ledongthuc/pdf"

	"resume-platform/resume/model"
	"resume-platform/resume/render"
)

func main() {
	outPath := flag.String("out", "./out/sample_resume.pdf", "output path for generated PDF")
	flag.Parse()

	resume := sampleResume()

	doc, err := render.NewRenderer().Render(resume)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		os.Exit(1)
	}

	if err := writeOutputs(*outPath, resume, doc); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	if err := validateRenderedPDF(*outPath, resume); err != nil {
		fmt.Fprintf(os.Stderr, "render validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s\n", *outPath)
}

func writeOutputs(outPath string, resume model.Resume, doc []byte) error {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(outPath, doc, 0o644); err != nil {
		return err
	}

	payload, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "sample_resume.json"), payload, 0o644)
}

func sampleResume() model.Resume {
	now := time.Now().UTC()
	return model.Resume{
		ID:     "sample",
		UserID: "demo",
		Title:  "Senior Backend Engineer",
		PersonalDetails: model.PersonalDetails{
			model.DetailFullName: "Jordan Lee",
			model.DetailEmail:    "jordan.lee@example.com",
			model.DetailPhone:    "+1-555-0102",
			model.DetailLocation: "Austin, TX",
		},
		Summary: model.StringPtr("Backend engineer with 8+ years of experience building resilient APIs and data services."),
		Experience: []model.Experience{
			{
				Company:     "Acme Logistics",
				Position:    "Senior Backend Engineer",
				StartDate:   "2021-04",
				Description: "Designed a routing service that reduced shipment latency by 18%.",
				Location:    model.StringPtr("Austin, TX"),
			},
			{
				Company:     "Blue Harbor Systems",
				Position:    "Backend Engineer",
				StartDate:   "2018-01",
				EndDate:     model.StringPtr("2021-03"),
				Description: "Built event-driven ingestion pipelines for compliance data feeds.",
			},
		},
		Education: []model.Education{
			{
				Institution:  "University of Texas",
				Degree:       "B.S.",
				FieldOfStudy: "Computer Science",
				StartDate:    "2012-09",
				EndDate:      model.StringPtr("2016-05"),
				Grade:        model.StringPtr("3.8"),
			},
		},
		Skills:    []string{"Go", "PostgreSQL", "Redis", "AWS"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func validateRenderedPDF(path string, resume model.Resume) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	reader, err := pdfreader.NewReader(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return err
	}
	content, err := io.ReadAll(plain)
	if err != nil {
		return err
	}

	text := string(content)
	for _, want := range []string{resume.PersonalDetails.Get(model.DetailFullName), render.HeadingExperience, render.HeadingSkills} {
		if !strings.Contains(text, want) {
			return fmt.Errorf("rendered text missing %q", want)
		}
	}
	return nil
}
