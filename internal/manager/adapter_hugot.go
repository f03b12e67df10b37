package manager

import (
	"errors"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"argmap/internal/accel"
)

type hugotParams struct {
	device          accel.Device
	onnxLibraryPath string
}

// hugotModel owns a hugot session and its feature-extraction pipeline.
type hugotModel struct {
	session  *hugot.Session
	pipeline *pipelines.FeatureExtractionPipeline
}

func newHugotModel(id, dir string, p hugotParams) (Model, error) {
	session, err := newHugotSession(p)
	if err != nil {
		return nil, err
	}
	pipe, err := hugot.NewPipeline(session, hugot.FeatureExtractionConfig{
		ModelPath: dir,
		Name:      "embed:" + id,
	})
	if err != nil {
		return nil, errors.Join(err, session.Destroy())
	}
	return &hugotModel{session: session, pipeline: pipe}, nil
}

// Embed returns one vector per input text.
func (m *hugotModel) Embed(texts []string) ([][]float32, error) {
	out, err := m.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, err
	}
	return out.Embeddings, nil
}

func (m *hugotModel) Close() error {
	if m.session == nil {
		return nil
	}
	err := m.session.Destroy()
	m.session, m.pipeline = nil, nil
	return err
}

// downloadEmbeddingModel fetches id from the Hugging Face hub into dir and
// returns the model directory.
func downloadEmbeddingModel(id, dir, token string) (string, error) {
	opts := hugot.NewDownloadOptions()
	if token != "" {
		opts.AuthToken = token
	}
	path, err := hugot.DownloadModel(id, dir, opts)
	if err != nil {
		if strings.Contains(err.Error(), "404") {
			return "", ErrModelNotFound(id, err)
		}
		return "", err
	}
	return path, nil
}

// cacheDirName is the directory hugot creates for id under the cache root.
func cacheDirName(id string) string { return strings.ReplaceAll(id, "/", "_") }
