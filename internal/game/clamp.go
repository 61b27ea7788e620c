package game

// Clamp limits a coordinate to [half, bound-half] so an entity of the given
// half-size always sits fully inside the arena. Used for every position
// mutation.
func Clamp(v, half, bound float64) float64 {
	if v < half {
		return half
	}
	if v > bound-half {
		return bound - half
	}
	return v
}

// overlapAABB reports whether two boxes centred at (ax,ay) and (bx,by)
// overlap. tol widens both boxes so grazing contact still registers.
func overlapAABB(ax, ay, ahalf, bx, by, bhalf, tol float64) bool {
	return ax-ahalf-tol <= bx+bhalf+tol &&
		ax+ahalf+tol >= bx-bhalf-tol &&
		ay-ahalf-tol <= by+bhalf+tol &&
		ay+ahalf+tol >= by-bhalf-tol
}
