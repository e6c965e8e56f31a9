package domain

import "fmt"

// EquipmentCode derives the human-readable display code from a numeric id.
// The mapping is a pure function: the same id always yields the same code and
// distinct ids never collide (the zero padding grows past 9999).
func EquipmentCode(id int64) string {
	return fmt.Sprintf("EQ-%04d", id)
}
