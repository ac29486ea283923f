package core

import "fmt"

// Vector2d is a position on the board grid. X is the column, Y the line.
type Vector2d struct {
	X, Y int
}

// NewVector2d creates a vector with the given column and line
func NewVector2d(x, y int) Vector2d {
	return Vector2d{X: x, Y: y}
}

// FromIndex creates a vector from a row-major grid index
func FromIndex(idx, width int) Vector2d {
	return Vector2d{
		X: idx % width,
		Y: idx / width,
	}
}

// IsValid checks if the vector lies within the given bounds
func (v Vector2d) IsValid(width, height int) bool {
	return v.X >= 0 && v.X < width && v.Y >= 0 && v.Y < height
}

// ToIndex converts the vector to a row-major grid index
func (v Vector2d) ToIndex(width int) int {
	return v.Y*width + v.X
}

// Add returns the component-wise sum of two vectors
func (v Vector2d) Add(other Vector2d) Vector2d {
	return Vector2d{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub returns the component-wise difference of two vectors
func (v Vector2d) Sub(other Vector2d) Vector2d {
	return Vector2d{X: v.X - other.X, Y: v.Y - other.Y}
}

// Equal checks if two vectors are equal
func (v Vector2d) Equal(other Vector2d) bool {
	return v.X == other.X && v.Y == other.Y
}

// String returns a string representation of the vector
func (v Vector2d) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}
