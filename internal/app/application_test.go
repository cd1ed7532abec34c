package app

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"image-analyser/internal/config"
	"image-analyser/internal/gui/components"
	"image-analyser/internal/logger"
	"image-analyser/internal/models"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApplication(t *testing.T) *Application {
	t.Helper()
	a := NewApplication(test.NewApp(), config.Default(), logger.NewNop())
	t.Cleanup(a.Shutdown)
	return a
}

func TestNewApplicationWiresWindow(t *testing.T) {
	a := newTestApplication(t)

	assert.NotNil(t, a.GUIManager().GetMainContainer())
	assert.NotNil(t, a.GUIManager().ParameterPanel())
	assert.Equal(t, AppName, a.Window().Title())
	assert.Equal(t, config.Default().Filter(), a.Session().Variant())
}

func TestHandlersDecodeUploadedImage(t *testing.T) {
	a := newTestApplication(t)

	var data bytes.Buffer
	require.NoError(t, png.Encode(&data, image.NewGray(image.Rect(0, 0, 12, 8))))

	buf, err := a.handlers.LoadFrom(&data, "upload.png")
	require.NoError(t, err)
	assert.Equal(t, 12, buf.Width())
	assert.Equal(t, "upload.png", buf.Source)
}

func TestApplyLoadedErrorLeavesInputs(t *testing.T) {
	a := newTestApplication(t)

	a.handlers.ApplyLoaded(components.PrimarySlot, nil, errors.New("bad file"))
	assert.Equal(t, "Ready", a.GUIManager().StatusBar().Status())
	assert.Nil(t, a.Session().primary)
}

func TestShutdownClosesSession(t *testing.T) {
	a := newTestApplication(t)
	a.Shutdown()

	assert.True(t, a.Session().closed)
	assert.Zero(t, a.Session().runner.Submit(a.Session().Variant(), nil, nil))
}

func TestStartSeedsBothDefaultInputs(t *testing.T) {
	a := newTestApplication(t)
	a.Start()

	s := a.Session()
	require.NotNil(t, s.primary)
	require.NotNil(t, s.secondary)
	assert.Equal(t, GradientSize, s.primary.Width())
	assert.True(t, s.primary.SameShape(s.secondary))
	assert.NotEqual(t, s.primary.Source, s.secondary.Source)

	a.handlers.ApplyLoaded(components.SecondarySlot, models.NewImageBuffer(image.NewGray(image.Rect(0, 0, 4, 4)), "mine.png"), nil)
	assert.Equal(t, "mine.png", s.secondary.Source)

	a.handlers.HandleDefaultInputs()
	assert.True(t, s.primary.SameShape(s.secondary))
	assert.NotEqual(t, "mine.png", s.secondary.Source)
}
