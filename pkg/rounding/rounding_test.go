package rounding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlaces(t *testing.T) {
	assert.Equal(t, 1.01, Places(1.005, 2))
	assert.Equal(t, 35.38, Liters(35.38))
	assert.Equal(t, 0.7512, Density(0.75115))
	assert.Equal(t, 15.3, Temperature(15.25))
	assert.Equal(t, -2.5, Places(-2.45, 1))
}

func TestHalfUp(t *testing.T) {
	assert.Equal(t, 11, HalfUp(33.0/3))
	assert.Equal(t, 2, HalfUp(5.0/3))
	assert.Equal(t, 10, HalfUp(31.0/3))
	assert.Equal(t, 3, HalfUp(2.5))
	assert.Equal(t, -2, HalfUp(-2.5))
}

func TestMass(t *testing.T) {
	assert.Equal(t, 370.0, Mass(500, 0.74))
	assert.Equal(t, 4566.24, Mass(6178.95, 0.739))
	assert.Equal(t, -74.0, Mass(-100, 0.74))
}
