// Package domaintest provides fake models and sample images for tests of packages built on top of the domain.
package domaintest

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"

	"kgeyst.com/pictale/pkg/pictale/domain"
)

// FakeCaptionModel returns canned candidates and counts calls.
type FakeCaptionModel struct {
	mutex      sync.Mutex
	Candidates []domain.GeneratedText
	Err        error
	calls      int
	images     []*domain.DecodedImage
}

func NewFakeCaptionModel(texts ...string) *FakeCaptionModel {
	return &FakeCaptionModel{Candidates: toGeneratedTexts(texts)}
}

func (f *FakeCaptionModel) Name() string {
	return "fake-captioner"
}

func (f *FakeCaptionModel) Caption(_ context.Context, image *domain.DecodedImage) ([]domain.GeneratedText, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.calls++
	f.images = append(f.images, image)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Candidates, nil
}

func (f *FakeCaptionModel) Calls() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.calls
}

// Images the images the model was called with, in order.
func (f *FakeCaptionModel) Images() []*domain.DecodedImage {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]*domain.DecodedImage(nil), f.images...)
}

// FakeStoryModel returns canned candidates and records prompts.
type FakeStoryModel struct {
	mutex      sync.Mutex
	Candidates []domain.GeneratedText
	Err        error
	prompts    []string
	options    []domain.GenerateOptions
}

func NewFakeStoryModel(texts ...string) *FakeStoryModel {
	return &FakeStoryModel{Candidates: toGeneratedTexts(texts)}
}

func (f *FakeStoryModel) Name() string {
	return "fake-storyteller"
}

func (f *FakeStoryModel) Generate(_ context.Context, prompt string, options domain.GenerateOptions) ([]domain.GeneratedText, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.prompts = append(f.prompts, prompt)
	f.options = append(f.options, options)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Candidates, nil
}

func (f *FakeStoryModel) Calls() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return len(f.prompts)
}

func (f *FakeStoryModel) Prompts() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]string(nil), f.prompts...)
}

func (f *FakeStoryModel) Options() []domain.GenerateOptions {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return append([]domain.GenerateOptions(nil), f.options...)
}

// CountingLoader a domain.ModelLoader which returns fixed models (or a fixed error) and counts calls.
type CountingLoader struct {
	mutex  sync.Mutex
	Models *domain.Models
	Err    error
	calls  int
}

func (c *CountingLoader) Load(context.Context) (*domain.Models, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.calls++
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Models, nil
}

func (c *CountingLoader) Calls() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.calls
}

// PNG encodes a small solid picture.
func PNG() []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, sampleImage())
	return buf.Bytes()
}

// JPEG encodes a small solid picture.
func JPEG() []byte {
	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, sampleImage(), nil)
	return buf.Bytes()
}

func sampleImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for x := 0; x < 4; x++ {
		for y := 0; y < 3; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	return img
}

func toGeneratedTexts(texts []string) []domain.GeneratedText {
	result := make([]domain.GeneratedText, 0, len(texts))
	for _, text := range texts {
		result = append(result, domain.GeneratedText{Text: text})
	}
	return result
}
