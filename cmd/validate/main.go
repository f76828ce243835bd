// Command validate sanity-checks the deployable artifacts before rollout:
// the ONNX model with its scaler and feature manifest, and the NLP lexicon.
// It loads everything exactly the way the API process does and exercises a
// handful of known inputs.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -model artifacts/model.onnx -scaler artifacts/scaler.json \
//	  -features artifacts/features.json -lexicon data/nlp/lexicon.json
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
	"github.com/rainsafe/rainsafe-backend/internal/nlp"
	"github.com/rainsafe/rainsafe-backend/internal/predictor"
)

// phase tracks pass/fail for one validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	modelPath := flag.String("model", "", "path to model.onnx (optional)")
	scalerPath := flag.String("scaler", "", "path to scaler.json (optional)")
	featuresPath := flag.String("features", "", "path to features.json (optional)")
	onnxLibPath := flag.String("onnx-lib", "", "path to the onnxruntime shared library (optional)")
	lexiconPath := flag.String("lexicon", "data/nlp/lexicon.json", "path to the NLP lexicon resource")
	flag.Parse()

	phases := []*phase{
		validateScaler(*scalerPath),
		validateModel(*modelPath, *scalerPath, *featuresPath, *onnxLibPath),
		validateLexicon(*lexiconPath),
	}

	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-34s %s\n", p.name, status)
	}
	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if !allPassed {
		fmt.Println("\nValidation FAILED.")
		os.Exit(1)
	}
	fmt.Println("\nAll validations passed.")
}

func validateScaler(path string) *phase {
	p := &phase{name: "Scaler"}
	if path == "" {
		p.name = "Scaler (skipped, no -scaler)"
		return p
	}

	s, err := predictor.LoadScaler(path)
	if err != nil {
		p.errorf("load: %v", err)
		return p
	}

	// Scaling the training means must land on the origin.
	var means [domain.FeatureCount]float64
	copy(means[:], s.Mean)
	for i, v := range s.Transform(means) {
		if v != 0 {
			p.errorf("transform of the mean vector is nonzero at %s: %g", domain.FeatureNames[i], v)
		}
	}
	return p
}

func validateModel(modelPath, scalerPath, featuresPath, onnxLibPath string) *phase {
	p := &phase{name: "Model"}
	if modelPath == "" {
		p.name = "Model (skipped, no -model)"
		return p
	}

	fallback := predictor.NewHeuristic(10, 80)
	loaded := predictor.Load(predictor.Artifacts{
		ModelPath:    modelPath,
		ScalerPath:   scalerPath,
		FeaturesPath: featuresPath,
		ONNXLibPath:  onnxLibPath,
	}, fallback, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if loaded.Source() != predictor.SourceModel {
		p.errorf("model did not load, predictor fell back to %s", loaded.Source())
		return p
	}

	// Every prediction must resolve to a concrete level, extremes included.
	vectors := []domain.FeatureVector{
		domain.DefaultFeatureVector(),
		{},
		{TempC: 26, HumidityPct: 96, Rain1hMM: 40, PressureHPa: 998, NearbyReports: 12, RainfallNext3h: 30},
	}
	for i, v := range vectors {
		if level := loaded.Predict(v); !level.Known() {
			p.errorf("vector %d: prediction is %s", i, level)
		}
	}
	return p
}

func validateLexicon(path string) *phase {
	p := &phase{name: "NLP lexicon"}

	lex, err := nlp.LoadLexicon(path)
	if err != nil {
		p.errorf("load: %v", err)
		return p
	}
	analyzer := nlp.NewAnalyzer(lex)

	// Known phrases with their expected severities.
	checks := []struct {
		description string
		severity    string
	}{
		{"Water is rising and waterlogged the street", "medium"},
		{"People are trapped, the road is impassable", "high"},
		{"A calm and sunny afternoon", "low"},
	}
	for _, c := range checks {
		if got := analyzer.Score(c.description).Severity; got != c.severity {
			p.errorf("%q scored %s, want %s", c.description, got, c.severity)
		}
	}
	return p
}
