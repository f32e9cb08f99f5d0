package semantic

// ShadingPattern is a type 2 pattern.
type ShadingPattern struct {
	Matrix *Matrix
}

// PatternMatrix returns the pattern matrix, identity when absent.
func (p *ShadingPattern) PatternMatrix() Matrix {
	if p.Matrix == nil {
		return IdentityMatrix
	}
	return *p.Matrix
}
