package shaderpixel

import "math"

// ConeShadow returns how much of light reaches p past occluder: 1 lit, 0 in the umbra,
// smooth in between across band radians around the umbra cone's half-angle.
func ConeShadow(light, occluder Sphere, p Vec3, band Real) Real {
	toOcc := occluder.Center.Sub(light.Center)
	d := toOcc.Len()
	if d < epsDist {
		return 1
	}
	axis := toOcc.Mul(1 / d)
	// only points beyond the occluder (seen from the light) can be shadowed
	if p.Sub(occluder.Center).Dot(axis) <= 0 {
		return 1
	}
	if band <= 0 {
		band = PenumbraBand
	}
	dr := light.Radius - occluder.Radius
	if dr <= epsDist {
		// occluder at least as large as the light: the shadow is a cylinder (or widening cone)
		off := p.Sub(occluder.Center)
		radial := off.Sub(axis.Mul(off.Dot(axis))).Len()
		return smoothstep(occluder.Radius*(1-band), occluder.Radius*(1+band), radial)
	}
	// apex of the umbra cone, behind the occluder
	apexDist := d * occluder.Radius / dr
	apex := occluder.Center.Add(axis.Mul(apexDist))
	half := math.Asin(clamp(dr/d, -1, 1))
	v := p.Sub(apex)
	vl := v.Len()
	if vl < epsDist {
		return smoothstep(-band, band, 0)
	}
	// the cone opens from the apex back towards the occluder
	cosA := clamp(v.Mul(1/vl).Dot(axis.Mul(-1)), -1, 1)
	angle := math.Acos(cosA)
	return smoothstep(half-band, half+band, angle)
}

// lambert is the clamped cosine term.
func lambert(n, l Vec3) Real { return math.Max(0, n.Dot(l)) }

// shadeDiffuse combines an ambient floor with a lit Lambert term.
func shadeDiffuse(albedo RGB, n, l Vec3, lit, ambient Real) RGB {
	k := ambient + (1-ambient)*lambert(n, l)*lit
	return RGB{albedo.R * k, albedo.G * k, albedo.B * k}
}

// fog blends c towards fogColor with exponential falloff over distance t.
func fog(c, fogColor RGB, t, density Real) RGB {
	f := 1 - math.Exp(-density*t)
	return rgb(vmix(c.Vec(), fogColor.Vec(), f))
}
