package sprite

import "pixel-invaders/internal/geom"

// Blit copies f's pixels into dst at pos, skipping transparent source
// pixels. dst is an RGBA buffer dstW pixels wide; regions outside it are
// clipped.
func Blit(dst []byte, dstW int, pos geom.Point, f *Frame) {
	dstH := len(dst) / 4 / dstW
	for sy := 0; sy < f.H; sy++ {
		dy := pos.Y + sy
		if dy < 0 || dy >= dstH {
			continue
		}
		for sx := 0; sx < f.W; sx++ {
			dx := pos.X + sx
			if dx < 0 || dx >= dstW {
				continue
			}
			si := (sy*f.W + sx) * 4
			if f.Pix[si+3] == 0 {
				continue
			}
			di := (dy*dstW + dx) * 4
			dst[di] = f.Pix[si]
			dst[di+1] = f.Pix[si+1]
			dst[di+2] = f.Pix[si+2]
			dst[di+3] = f.Pix[si+3]
		}
	}
}
