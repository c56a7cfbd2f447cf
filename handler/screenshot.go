package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"time"

	"github.com/use-agent/wdbridge/controller"
	"github.com/use-agent/wdbridge/wire"
)

// TakeScreenshot polls the Controller for a compositor frame, matching
// the original's 30-retry/1-second-interval loop: immediately after a
// navigation the compositor can have nothing ready yet, and the
// original bridge's contract was to wait rather than fail.
func (h *Handler) TakeScreenshot(ctx context.Context) (string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return "", werr
	}
	img, err := pollScreenshot(ctx, ctrl, h.cfg.ScreenshotPollInterval, h.cfg.ScreenshotPollTimeout)
	if err != nil {
		return "", wire.NewError(wire.Timeout, "Taking screenshot timed out")
	}
	return encodePNGBase64(img)
}

// TakeElementScreenshot screenshots the whole viewport and crops to the
// element's bounding rect, after confirming the element still resolves
// (a GetBoundingClientRect-equivalent probe, as the original did before
// clipping).
func (h *Handler) TakeElementScreenshot(ctx context.Context, id string) (string, *wire.Error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ctrl, werr := h.requireSession()
	if werr != nil {
		return "", werr
	}
	el, werr := h.resolveElement(id)
	if werr != nil {
		return "", werr
	}
	rect, err := ctrl.ElementRect(ctx, el)
	if err != nil {
		return "", staleOrUnknown(err)
	}

	img, err := pollScreenshot(ctx, ctrl, h.cfg.ScreenshotPollInterval, h.cfg.ScreenshotPollTimeout)
	if err != nil {
		return "", wire.NewError(wire.Timeout, "Taking screenshot timed out")
	}
	cropped := cropRGB(img, rect)
	return encodePNGBase64(cropped)
}

func pollScreenshot(ctx context.Context, ctrl controller.Controller, interval, timeout time.Duration) (controller.RGBImage, error) {
	deadline := time.Now().Add(timeout)
	for {
		img, err := ctrl.Screenshot(ctx)
		if err == nil && len(img.Pix) > 0 {
			return img, nil
		}
		if time.Now().After(deadline) {
			return controller.RGBImage{}, context.DeadlineExceeded
		}
		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return controller.RGBImage{}, ctx.Err()
		}
	}
}

func cropRGB(img controller.RGBImage, rect controller.ElementRect) controller.RGBImage {
	x0, y0 := int(rect.X), int(rect.Y)
	w, h := int(rect.Width), int(rect.Height)
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x0+w > img.Width {
		w = img.Width - x0
	}
	if y0+h > img.Height {
		h = img.Height - y0
	}
	if w <= 0 || h <= 0 {
		return img
	}
	out := make([]byte, 0, w*h*3)
	for y := y0; y < y0+h; y++ {
		rowStart := (y*img.Width + x0) * 3
		out = append(out, img.Pix[rowStart:rowStart+w*3]...)
	}
	return controller.RGBImage{Width: w, Height: h, Pix: out}
}

// encodePNGBase64 rebuilds an RGB8 image and re-encodes it as PNG, the
// same assert-format / encode / base64 pipeline the original compositor
// contract required of the bridge itself rather than delegating
// straight to the engine's own screenshot encoder.
func encodePNGBase64(img controller.RGBImage) (string, *wire.Error) {
	if img.Width == 0 || img.Height == 0 {
		return "", wire.NewError(wire.UnknownError, "empty screenshot")
	}
	if len(img.Pix) != img.Width*img.Height*3 {
		return "", wire.NewError(wire.UnknownError, "screenshot is not a 24-bit RGB framebuffer")
	}
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := (y*img.Width + x) * 3
			rgba.Set(x, y, color.RGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return "", wire.WrapError(wire.UnknownError, "failed to encode screenshot", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
