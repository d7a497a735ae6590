package rawdecode

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/tiff"
)

// DCRaw decodes RAW files by shelling out to the dcraw binary: "-i -v" for
// identification and metadata, "-c -T -w" for a camera-white-balanced TIFF
// on stdout.
type DCRaw struct {
	bin string
}

func NewDCRaw() *DCRaw {
	return &DCRaw{bin: "dcraw"}
}

func (d *DCRaw) Open(ctx context.Context, path string) (Handle, error) {
	out, err := exec.CommandContext(ctx, d.bin, "-i", "-v", path).Output()
	if err != nil {
		return nil, fmt.Errorf("dcraw cannot identify %s: %w", filepath.Base(path), err)
	}

	return &dcrawHandle{
		bin:  d.bin,
		path: path,
		meta: parseIdentify(string(out)),
	}, nil
}

type dcrawHandle struct {
	bin  string
	path string
	meta *Metadata
}

func (h *dcrawHandle) Metadata() *Metadata {
	return h.meta
}

func (h *dcrawHandle) Decode(ctx context.Context) (image.Image, error) {
	cmd := exec.CommandContext(ctx, h.bin, "-c", "-T", "-w", "-v", h.path)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("dcraw decode %s: %w: %s",
			filepath.Base(h.path), err, strings.TrimSpace(stderr.String()))
	}

	// The verbose progress log carries the black/white levels dcraw used.
	parseScaling(stderr.String(), h.meta)

	img, err := tiff.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decode dcraw tiff output: %w", err)
	}
	return img, nil
}

func (h *dcrawHandle) Close() error {
	// dcraw runs per call; nothing is held open between calls.
	return nil
}

// parseIdentify reads "Key: value" lines from dcraw -i -v output.
func parseIdentify(out string) *Metadata {
	meta := &Metadata{}

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Camera":
			meta.Camera = value
		case "Image size":
			fmt.Sscanf(value, "%d x %d", &meta.Width, &meta.Height)
		case "Raw colors":
			meta.Colors, _ = strconv.Atoi(value)
		case "Filter pattern":
			meta.FilterPattern = value
		case "Camera multipliers":
			meta.CameraWB = parseMultipliers(value)
		case "Daylight multipliers":
			meta.DaylightWB = parseMultipliers(value)
		}
	}
	return meta
}

// parseScaling extracts black and white levels from the decode progress log,
// e.g. "Scaling with darkness 1023, saturation 15600, and ...".
func parseScaling(stderr string, meta *Metadata) {
	scanner := bufio.NewScanner(strings.NewReader(stderr))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "Scaling with darkness") {
			continue
		}
		var darkness, saturation int
		if _, err := fmt.Sscanf(line, "Scaling with darkness %d, saturation %d", &darkness, &saturation); err == nil {
			meta.BlackLevel = darkness
			meta.WhiteLevel = saturation
		}
		return
	}
}

func parseMultipliers(value string) []float64 {
	fields := strings.Fields(value)
	multipliers := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		multipliers = append(multipliers, v)
	}
	return multipliers
}
