package colors

import (
	"fmt"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/figprep/figprep/internal/imaging"
)

// labMergeThreshold is the CIE Lab distance under which two quantized
// buckets are considered the same perceived color and merged. Distances
// around 0.1 are just noticeable; 0.15 folds antialiasing gradients into
// their parent color without collapsing genuinely distinct hues.
const labMergeThreshold = 0.15

// quantStep is the per-channel quantization applied before counting,
// matching a 16-level histogram per channel.
const quantStep = 16

type bucket struct {
	key              uint32 // packed quantized RGB, used for deterministic ordering
	weight           float64
	sumR, sumG, sumB float64
}

type cluster struct {
	seed             colorful.Color
	weight           float64
	sumR, sumG, sumB float64
}

// ExtractDominantColor returns the most visually representative color of
// the bitmap. Pixels are binned into a quantized RGB histogram weighted
// by alpha (fully transparent pixels are excluded), perceptually similar
// buckets are merged by Lab distance, and the heaviest cluster's weighted
// mean color wins. The result is deterministic for a fixed input.
//
// A fully transparent bitmap fails with ErrNoOpaquePixels.
func ExtractDominantColor(bmp *imaging.Bitmap) (Color, error) {
	buckets := make(map[uint32]*bucket)

	for y := 0; y < bmp.Height(); y++ {
		for x := 0; x < bmp.Width(); x++ {
			px := bmp.At(x, y)
			if px.A == 0 {
				continue
			}
			weight := float64(px.A) / 255.0
			key := packQuantized(px.R, px.G, px.B)
			b, ok := buckets[key]
			if !ok {
				b = &bucket{key: key}
				buckets[key] = b
			}
			b.weight += weight
			b.sumR += float64(px.R) * weight
			b.sumG += float64(px.G) * weight
			b.sumB += float64(px.B) * weight
		}
	}

	if len(buckets) == 0 {
		return Color{}, fmt.Errorf("extract dominant color: %w", ErrNoOpaquePixels)
	}

	// Heaviest buckets first; ties broken by packed key so the result
	// never depends on map iteration order.
	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].weight != ordered[j].weight {
			return ordered[i].weight > ordered[j].weight
		}
		return ordered[i].key < ordered[j].key
	})

	// Greedy perceptual merge: each bucket joins the first existing
	// cluster within the Lab threshold, otherwise seeds a new one.
	var clusters []*cluster
	for _, b := range ordered {
		mean := colorful.Color{
			R: b.sumR / b.weight / 255.0,
			G: b.sumG / b.weight / 255.0,
			B: b.sumB / b.weight / 255.0,
		}
		merged := false
		for _, cl := range clusters {
			if cl.seed.DistanceLab(mean) < labMergeThreshold {
				cl.weight += b.weight
				cl.sumR += b.sumR
				cl.sumG += b.sumG
				cl.sumB += b.sumB
				merged = true
				break
			}
		}
		if !merged {
			clusters = append(clusters, &cluster{
				seed:   mean,
				weight: b.weight,
				sumR:   b.sumR,
				sumG:   b.sumG,
				sumB:   b.sumB,
			})
		}
	}

	best := clusters[0]
	for _, cl := range clusters[1:] {
		if cl.weight > best.weight {
			best = cl
		}
	}

	return Color{
		R: uint8(best.sumR/best.weight + 0.5),
		G: uint8(best.sumG/best.weight + 0.5),
		B: uint8(best.sumB/best.weight + 0.5),
		A: 255,
	}, nil
}

func packQuantized(r, g, b uint8) uint32 {
	qr := uint32(r) / quantStep
	qg := uint32(g) / quantStep
	qb := uint32(b) / quantStep
	return qr<<16 | qg<<8 | qb
}
