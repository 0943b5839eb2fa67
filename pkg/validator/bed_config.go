package validator

import (
	"errors"
	"fmt"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

var (
	// ErrUnknownRoomType indicates the room type is not in the reference table
	ErrUnknownRoomType = errors.New("unknown room type")

	// ErrInvalidCapacity indicates a capacity below one guest
	ErrInvalidCapacity = errors.New("capacity must be at least 1")

	// ErrCapacityExceeded indicates the capacity is above the ceiling of the room type
	ErrCapacityExceeded = errors.New("capacity exceeds the maximum for this room type")

	// ErrInvalidBedConfig indicates the bed layout is not offered for the room type and capacity
	ErrInvalidBedConfig = errors.New("bed configuration is not valid for this room type and capacity")
)

// BedConfigError carries the rejection reason and the legal alternatives
type BedConfigError struct {
	Err          error
	Reason       string
	ValidOptions []models.BedConfig
}

func (e *BedConfigError) Error() string {
	return e.Reason
}

func (e *BedConfigError) Unwrap() error {
	return e.Err
}

func bed(count int, bedType models.BedType, description string) models.BedConfig {
	return models.BedConfig{BedCount: count, BedType: bedType, Description: description}
}

var (
	oneSingle         = bed(1, models.BedTypeSingle, "1 cama individual")
	oneDouble         = bed(1, models.BedTypeDouble, "1 cama doble")
	oneQueen          = bed(1, models.BedTypeQueen, "1 cama queen")
	oneKing           = bed(1, models.BedTypeKing, "1 cama king")
	twoSingles        = bed(2, models.BedTypeSingle, "2 camas individuales")
	threeSingles      = bed(3, models.BedTypeSingle, "3 camas individuales")
	fourSingles       = bed(4, models.BedTypeSingle, "4 camas individuales")
	sixSingles        = bed(6, models.BedTypeSingle, "6 camas individuales")
	twoDoubles        = bed(2, models.BedTypeDouble, "2 camas dobles")
	threeDoubles      = bed(3, models.BedTypeDouble, "3 camas dobles")
	twoQueens         = bed(2, models.BedTypeQueen, "2 camas queen")
	twoKings          = bed(2, models.BedTypeKing, "2 camas king")
	doublePlusSingle  = bed(2, models.BedTypeDoubleSingle, "1 cama doble y 1 individual")
	doublePlusSingles = bed(3, models.BedTypeDoubleSingle, "1 cama doble y 2 individuales")
	kingPlusSingle    = bed(2, models.BedTypeKingSingle, "1 cama king y 1 individual")
	kingPlusSingles   = bed(3, models.BedTypeKingSingle, "1 cama king y 2 individuales")
)

// genericLarge is offered for capacities of 4 or more that a room type does not tabulate
var genericLarge = []models.BedConfig{fourSingles, twoDoubles, doublePlusSingles, oneKing, twoQueens}

// genericSmall is offered for capacities below 4 that a room type does not tabulate
var genericSmall = map[int][]models.BedConfig{
	1: {oneSingle, oneDouble},
	2: {oneDouble, twoSingles, oneQueen},
	3: {threeSingles, doublePlusSingle},
}

type roomTypeRule struct {
	ceiling int
	configs map[int][]models.BedConfig
}

var bedRules = map[models.RoomType]roomTypeRule{
	models.RoomTypeSingle: {
		ceiling: 1,
		configs: map[int][]models.BedConfig{
			1: {oneSingle},
		},
	},
	models.RoomTypeDouble: {
		ceiling: 2,
		configs: map[int][]models.BedConfig{
			1: {oneDouble, oneSingle},
			2: {oneDouble, twoSingles, oneQueen, oneKing},
		},
	},
	models.RoomTypeTriple: {
		ceiling: 3,
		configs: map[int][]models.BedConfig{
			3: {threeSingles, doublePlusSingle, kingPlusSingle},
		},
	},
	models.RoomTypeQuad: {
		ceiling: 4,
		configs: map[int][]models.BedConfig{
			4: {fourSingles, twoDoubles, doublePlusSingles, twoQueens},
		},
	},
	models.RoomTypeSuite: {
		ceiling: 4,
		configs: map[int][]models.BedConfig{
			2: {oneKing, oneQueen},
			3: {kingPlusSingle},
		},
	},
	models.RoomTypeFamily: {
		ceiling: 6,
		configs: map[int][]models.BedConfig{
			4: {twoDoubles, doublePlusSingles, fourSingles},
			6: {threeDoubles, sixSingles},
		},
	},
	models.RoomTypePresidential: {
		ceiling: 4,
		configs: map[int][]models.BedConfig{
			2: {oneKing},
			3: {kingPlusSingle},
			4: {twoKings, kingPlusSingles},
		},
	},
}

// CapacityCeiling returns the maximum guests for a room type, 0 when the type is unknown
func CapacityCeiling(roomType models.RoomType) int {
	return bedRules[roomType].ceiling
}

// ValidBedConfigs lists the legal bed layouts for a room type at a given capacity.
// Returns nil for unknown types and for capacities outside 1..ceiling.
func ValidBedConfigs(roomType models.RoomType, capacity int) []models.BedConfig {
	rule, ok := bedRules[roomType]
	if !ok || capacity < 1 || capacity > rule.ceiling {
		return nil
	}

	var configs []models.BedConfig
	switch {
	case rule.configs[capacity] != nil:
		configs = rule.configs[capacity]
	case capacity >= 4:
		configs = genericLarge
	default:
		configs = genericSmall[capacity]
	}

	out := make([]models.BedConfig, len(configs))
	copy(out, configs)
	return out
}

// IsValidBedConfig reports whether {bedCount, bedType} is one of ValidBedConfigs(roomType, capacity)
func IsValidBedConfig(roomType models.RoomType, capacity, bedCount int, bedType models.BedType) bool {
	for _, c := range ValidBedConfigs(roomType, capacity) {
		if c.BedCount == bedCount && c.BedType == bedType {
			return true
		}
	}
	return false
}

// DefaultBedConfig returns the first valid layout, used to pre-fill forms
func DefaultBedConfig(roomType models.RoomType, capacity int) (models.BedConfig, bool) {
	configs := ValidBedConfigs(roomType, capacity)
	if len(configs) == 0 {
		return models.BedConfig{}, false
	}
	return configs[0], true
}

// ValidateBedConfig checks a room type, capacity and bed layout together.
// Invalid input is reported, never corrected: the error is a *BedConfigError
// listing the alternatives the caller may offer instead.
func ValidateBedConfig(roomType models.RoomType, capacity, bedCount int, bedType models.BedType) error {
	rule, ok := bedRules[roomType]
	if !ok {
		return &BedConfigError{
			Err:    ErrUnknownRoomType,
			Reason: fmt.Sprintf("unknown room type %q", roomType),
		}
	}

	if capacity < 1 {
		return &BedConfigError{
			Err:          ErrInvalidCapacity,
			Reason:       ErrInvalidCapacity.Error(),
			ValidOptions: ValidBedConfigs(roomType, 1),
		}
	}

	if capacity > rule.ceiling {
		return &BedConfigError{
			Err:          ErrCapacityExceeded,
			Reason:       fmt.Sprintf("capacity %d exceeds the maximum of %d for %s rooms", capacity, rule.ceiling, roomType),
			ValidOptions: ValidBedConfigs(roomType, rule.ceiling),
		}
	}

	if !IsValidBedConfig(roomType, capacity, bedCount, bedType) {
		return &BedConfigError{
			Err:          ErrInvalidBedConfig,
			Reason:       fmt.Sprintf("%d x %s is not a valid bed configuration for a %s room with capacity %d", bedCount, bedType, roomType, capacity),
			ValidOptions: ValidBedConfigs(roomType, capacity),
		}
	}

	return nil
}

// CheckBedConfig runs ValidateBedConfig and renders the outcome for API responses
func CheckBedConfig(roomType models.RoomType, capacity, bedCount int, bedType models.BedType) models.ValidationResult {
	err := ValidateBedConfig(roomType, capacity, bedCount, bedType)
	if err == nil {
		return models.ValidationResult{Valid: true}
	}

	var bcErr *BedConfigError
	if errors.As(err, &bcErr) {
		return models.ValidationResult{Valid: false, Reason: bcErr.Reason, ValidOptions: bcErr.ValidOptions}
	}
	return models.ValidationResult{Valid: false, Reason: err.Error()}
}
