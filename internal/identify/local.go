package identify

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync"

	// Register the decoders for every upload format the app accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	ort "github.com/yalue/onnxruntime_go"
	"golang.org/x/image/draw"

	"github.com/aquatrace/aquatrace/internal/species"
)

// The model's fixed input contract: a 1×224×224×3 RGB tensor with pixel
// values scaled to [0,1], softmax output over the nine species classes.
const inputSize = 224

// LocalClassifier runs the on-process convolutional model through ONNX
// Runtime. It is loaded once at startup and shared read-only across requests;
// the session itself is single-threaded per run, so Classify serializes on a
// mutex.
type LocalClassifier struct {
	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	logger  *slog.Logger
}

// NewLocalClassifier loads the ONNX model at modelPath. libraryPath
// optionally points at the onnxruntime shared library (needed on systems
// where it is not on the default search path). A missing model file is an
// error here — the caller decides whether to run without a local model.
func NewLocalClassifier(modelPath, libraryPath string, logger *slog.Logger) (*LocalClassifier, error) {
	if libraryPath != "" {
		ort.SetSharedLibraryPath(libraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("identify: initializing onnxruntime: %w", err)
		}
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, inputSize, inputSize, 3))
	if err != nil {
		return nil, fmt.Errorf("identify: creating input tensor: %w", err)
	}

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(species.ClassNames))))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("identify: creating output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.Value{input}, []ort.Value{output}, nil)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("identify: loading model %s: %w", modelPath, err)
	}

	logger.Info("local classifier loaded",
		slog.String("model", modelPath),
		slog.Int("classes", len(species.ClassNames)),
	)

	return &LocalClassifier{
		session: session,
		input:   input,
		output:  output,
		logger:  logger,
	}, nil
}

// Classify decodes and normalizes the image, runs a forward pass, and
// returns the argmax class index with its probability as a percentage.
func (c *LocalClassifier) Classify(ctx context.Context, imagePath string) (int, float64, error) {
	img, err := decodeImage(imagePath)
	if err != nil {
		return 0, 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	preprocess(img, c.input.GetData())

	if err := c.session.Run(); err != nil {
		return 0, 0, fmt.Errorf("identify: model forward pass: %w", err)
	}

	probs := c.output.GetData()
	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}

	return best, float64(probs[best]) * 100, nil
}

// Close releases the ONNX session and tensors.
func (c *LocalClassifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session.Destroy()
	c.input.Destroy()
	c.output.Destroy()
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("identify: opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("identify: decoding image %s: %w", path, err)
	}
	return img, nil
}

// preprocess scales the image to the model's fixed square resolution and
// fills dst with NHWC float32 RGB pixels in [0,1].
func preprocess(img image.Image, dst []float32) {
	scaled := image.NewRGBA(image.Rect(0, 0, inputSize, inputSize))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	i := 0
	for y := 0; y < inputSize; y++ {
		for x := 0; x < inputSize; x++ {
			r, g, b, _ := scaled.At(x, y).RGBA()
			// RGBA returns 16-bit channels; shift down to 8-bit first.
			dst[i] = float32(r>>8) / 255.0
			dst[i+1] = float32(g>>8) / 255.0
			dst[i+2] = float32(b>>8) / 255.0
			i += 3
		}
	}
}
