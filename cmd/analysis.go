package main

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sitescope/estimator-cli/internal/model"
)

// money renders grouped currency amounts for table output.
var money = message.NewPrinter(language.English)

// loadAnalysis reads a site analysis record from a JSON file, or stdin when
// path is "-".
func loadAnalysis(path string) (model.SiteAnalysis, error) {
	var analysis model.SiteAnalysis

	var raw []byte
	var err error
	if path == "-" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return analysis, eris.Wrapf(err, "read analysis %s", path)
	}

	if err := json.Unmarshal(raw, &analysis); err != nil {
		return analysis, eris.Wrapf(err, "parse analysis %s", path)
	}
	return analysis, nil
}

// buildAssessment wraps a computed result into a persistable record.
func buildAssessment(kind model.AssessmentKind, analysis model.SiteAnalysis, result any) (*model.Assessment, error) {
	inputJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, eris.Wrap(err, "marshal assessment input")
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, eris.Wrap(err, "marshal assessment result")
	}
	return &model.Assessment{
		Kind:     kind,
		Location: analysis.Location,
		Input:    inputJSON,
		Result:   resultJSON,
	}, nil
}

// saveAssessment opens the configured store and persists one record.
func saveAssessment(ctx context.Context, kind model.AssessmentKind, analysis model.SiteAnalysis, result any) (string, error) {
	a, err := buildAssessment(kind, analysis, result)
	if err != nil {
		return "", err
	}

	st, err := initStore(ctx)
	if err != nil {
		return "", err
	}
	defer st.Close() //nolint:errcheck

	if err := st.SaveAssessment(ctx, a); err != nil {
		return "", err
	}
	return a.ID, nil
}

// openOutput returns the output file for a command, defaulting to stdout.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", path)
	}
	return f, func() { f.Close() }, nil //nolint:errcheck
}

// writeJSONOutput pretty-prints v as JSON to w.
func writeJSONOutput(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "encode output")
}
