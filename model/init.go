package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// InitCond implements coretemp.InitCond
type InitCond struct {
	state *mat.VecDense
	cov   *mat.SymDense
}

// NewInitCond creates new InitCond from core temperature ct and its variance and returns it.
// It returns error if either value is not finite or variance is negative.
func NewInitCond(ct, variance float64) (*InitCond, error) {
	if math.IsNaN(ct) || math.IsInf(ct, 0) {
		return nil, fmt.Errorf("invalid initial core temperature: %v", ct)
	}

	if math.IsNaN(variance) || math.IsInf(variance, 0) || variance < 0 {
		return nil, fmt.Errorf("invalid initial variance: %v", variance)
	}

	return &InitCond{
		state: mat.NewVecDense(1, []float64{ct}),
		cov:   mat.NewSymDense(1, []float64{variance}),
	}, nil
}

// State returns initial state
func (c *InitCond) State() mat.Vector {
	state := mat.NewVecDense(c.state.Len(), nil)
	state.CopyVec(c.state)

	return state
}

// Cov returns initial covariance
func (c *InitCond) Cov() mat.Symmetric {
	cov := mat.NewSymDense(c.cov.SymmetricDim(), nil)
	cov.CopySym(c.cov)

	return cov
}
