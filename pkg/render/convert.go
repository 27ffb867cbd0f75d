package render

import (
	"bytes"
	"fmt"
	"os/exec"

	tgerrors "github.com/matzehuels/tilegrid/pkg/errors"
)

// ToPDF rasterizes a plan or adjacency SVG into PDF bytes. It backs the
// pdf export format and the /v1 render endpoints; callers pass the SVG
// produced by the plan or adjacency renderer unchanged.
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG rasterizes a plan or adjacency SVG into PNG bytes at the given
// scale factor. The pipeline default of 2.0 doubles the pixel density so
// pane labels stay crisp on high-DPI displays.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

// rsvgConvert pipes the SVG through rsvg-convert, the librsvg CLI. SVG and
// DOT exports never reach this path; only pdf and png do.
func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, tgerrors.New(tgerrors.ErrCodeUnsupported,
			"%s export needs rsvg-convert from librsvg (brew install librsvg / apt install librsvg2-bin)", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command("rsvg-convert", args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, tgerrors.Wrap(tgerrors.ErrCodeInternal, err,
			"convert svg to %s: %s", format, errBuf.String())
	}
	return out.Bytes(), nil
}
