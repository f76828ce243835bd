package predictor

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

// ortEnv manages global ONNX Runtime initialization (process-wide singleton).
var ortEnv struct {
	once sync.Once
	err  error
}

// initORT initializes the ONNX Runtime environment. Safe to call multiple
// times; only the first call has any effect.
func initORT(libPath string) error {
	ortEnv.once.Do(func() {
		ort.SetSharedLibraryPath(libPath)
		ortEnv.err = ort.InitializeEnvironment()
	})
	return ortEnv.err
}

// Model is the artifact-backed predictor: an ONNX session with an optional
// feature scaler and optional class labels. All fields are read-only after
// Load and shared across concurrent callers. Every failure path falls
// through to the heuristic, so Predict never errors.
type Model struct {
	session    *ort.DynamicAdvancedSession
	scaler     *Scaler
	labels     []string
	fallback   *Heuristic
	logger     *slog.Logger
	inputName  string
	outputName string
}

// Load selects the predictor for this process. It attempts to load the model
// artifact and, if present, the scaler and feature manifest. Any load
// failure is non-fatal: the condition is logged and the heuristic is
// returned instead. A missing model path selects the heuristic silently.
func Load(arts Artifacts, fallback *Heuristic, logger *slog.Logger) Predictor {
	if arts.ModelPath == "" {
		logger.Info("no model artifact configured, using heuristic predictor")
		return fallback
	}

	model, err := loadModel(arts, fallback, logger)
	if err != nil {
		logger.Warn("model artifact load failed, using heuristic predictor",
			"model", arts.ModelPath, "error", err)
		return fallback
	}

	logger.Info("model predictor loaded",
		"model", arts.ModelPath,
		"scaled", model.scaler != nil,
		"labels", len(model.labels) > 0,
	)
	return model
}

func loadModel(arts Artifacts, fallback *Heuristic, logger *slog.Logger) (*Model, error) {
	if _, err := os.Stat(arts.ModelPath); err != nil {
		return nil, fmt.Errorf("stat model artifact: %w", err)
	}

	// The ONNX Runtime shared library ships alongside the model unless
	// configured elsewhere.
	libPath := arts.ONNXLibPath
	if libPath == "" {
		libPath = filepath.Join(filepath.Dir(arts.ModelPath), "libonnxruntime.so")
	}
	if err := initORT(libPath); err != nil {
		return nil, fmt.Errorf("initialize onnx runtime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(arts.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("read model info: %w", err)
	}
	if len(inputs) != 1 || len(outputs) == 0 {
		return nil, fmt.Errorf("expected 1 input and at least 1 output, got %d/%d",
			len(inputs), len(outputs))
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("create session options: %w", err)
	}
	defer opts.Destroy()
	opts.SetIntraOpNumThreads(1)
	opts.SetInterOpNumThreads(1)

	session, err := ort.NewDynamicAdvancedSession(
		arts.ModelPath,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	m := &Model{
		session:    session,
		fallback:   fallback,
		logger:     logger,
		inputName:  inputs[0].Name,
		outputName: outputs[0].Name,
	}

	// Scaler is optional; a broken scaler artifact disables scaling only.
	if arts.ScalerPath != "" {
		scaler, err := LoadScaler(arts.ScalerPath)
		if err != nil {
			logger.Warn("scaler artifact load failed, inference proceeds unscaled",
				"scaler", arts.ScalerPath, "error", err)
		} else {
			m.scaler = scaler
		}
	}

	// The feature manifest is optional, but if present it must match the
	// vector contract: a mismatch means the model is unusable.
	if arts.FeaturesPath != "" {
		manifest, err := loadManifest(arts.FeaturesPath)
		if err != nil {
			session.Destroy()
			return nil, err
		}
		m.labels = manifest.Labels
	}

	return m, nil
}

// Predict runs inference on a single vector, falling through to the
// heuristic on any failure.
func (m *Model) Predict(v domain.FeatureVector) domain.RiskLevel {
	values := v.Values()
	if m.scaler != nil {
		values = m.scaler.Transform(values)
	}

	level, err := m.infer(values)
	if err != nil {
		m.logger.Warn("model inference failed, using heuristic", "error", err)
		return m.fallback.Predict(v)
	}
	return level
}

// PredictBatch predicts a parallel sequence of levels.
func (m *Model) PredictBatch(vs []domain.FeatureVector) []domain.RiskLevel {
	out := make([]domain.RiskLevel, len(vs))
	for i, v := range vs {
		out[i] = m.Predict(v)
	}
	return out
}

func (m *Model) Source() string { return SourceModel }

// Close releases the underlying ONNX session.
func (m *Model) Close() {
	if m.session != nil {
		m.session.Destroy()
	}
}

func (m *Model) infer(values [domain.FeatureCount]float64) (domain.RiskLevel, error) {
	data := make([]float32, domain.FeatureCount)
	for i, v := range values {
		data[i] = float32(v)
	}

	input, err := ort.NewTensor(ort.NewShape(1, domain.FeatureCount), data)
	if err != nil {
		return domain.RiskUnknown, fmt.Errorf("create input tensor: %w", err)
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	if err := m.session.Run([]ort.Value{input}, outputs); err != nil {
		return domain.RiskUnknown, fmt.Errorf("run session: %w", err)
	}
	defer outputs[0].Destroy()

	return m.normalizeOutput(outputs[0])
}

// normalizeOutput maps the model's raw output tensor to a risk level.
// Single-element outputs are numeric class predictions; wider float outputs
// are per-class scores resolved by argmax. When the manifest carries string
// class labels, the class index goes through label normalization instead.
func (m *Model) normalizeOutput(out ort.Value) (domain.RiskLevel, error) {
	switch t := out.(type) {
	case *ort.Tensor[int64]:
		data := t.GetData()
		if len(data) == 0 {
			return domain.RiskUnknown, fmt.Errorf("empty output tensor")
		}
		return m.classToLevel(int(data[0])), nil
	case *ort.Tensor[float32]:
		data := t.GetData()
		switch {
		case len(data) == 0:
			return domain.RiskUnknown, fmt.Errorf("empty output tensor")
		case len(data) == 1:
			return m.classToLevel(int(data[0])), nil
		default:
			return m.classToLevel(argmax(data)), nil
		}
	default:
		return domain.RiskUnknown, fmt.Errorf("unsupported output tensor type %T", out)
	}
}

func (m *Model) classToLevel(class int) domain.RiskLevel {
	if class >= 0 && class < len(m.labels) {
		return levelFromLabel(m.labels[class])
	}
	return levelFromClass(float64(class))
}

func argmax(data []float32) int {
	best := 0
	for i, v := range data {
		if v > data[best] {
			best = i
		}
	}
	return best
}
