package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jPabloBC/hl.ingenit-v1-sub000/internal/models"
)

func TestCapacityCeiling(t *testing.T) {
	tests := []struct {
		input    models.RoomType
		expected int
		name     string
	}{
		{models.RoomTypeSingle, 1, "single"},
		{models.RoomTypeDouble, 2, "double"},
		{models.RoomTypeTriple, 3, "triple"},
		{models.RoomTypeQuad, 4, "quad"},
		{models.RoomTypeSuite, 4, "suite"},
		{models.RoomTypeFamily, 6, "family"},
		{models.RoomTypePresidential, 4, "presidential"},
		{models.RoomType("dorm"), 0, "unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CapacityCeiling(tc.input))
		})
	}
}

func TestValidBedConfigs(t *testing.T) {
	t.Run("single room", func(t *testing.T) {
		assert.Equal(t, []models.BedConfig{{BedCount: 1, BedType: models.BedTypeSingle, Description: "1 cama individual"}},
			ValidBedConfigs(models.RoomTypeSingle, 1))
	})

	t.Run("generic fallback for untabulated large capacity", func(t *testing.T) {
		configs := ValidBedConfigs(models.RoomTypeSuite, 4)
		require.Len(t, configs, 5)
		assert.Equal(t, models.BedConfig{BedCount: 4, BedType: models.BedTypeSingle, Description: "4 camas individuales"}, configs[0])
		assert.Contains(t, configs, models.BedConfig{BedCount: 2, BedType: models.BedTypeDouble, Description: "2 camas dobles"})
		assert.Contains(t, configs, models.BedConfig{BedCount: 3, BedType: models.BedTypeDoubleSingle, Description: "1 cama doble y 2 individuales"})
		assert.Contains(t, configs, models.BedConfig{BedCount: 1, BedType: models.BedTypeKing, Description: "1 cama king"})
		assert.Contains(t, configs, models.BedConfig{BedCount: 2, BedType: models.BedTypeQueen, Description: "2 camas queen"})
		assert.Equal(t, configs, ValidBedConfigs(models.RoomTypeFamily, 5))
	})

	t.Run("small untabulated capacity", func(t *testing.T) {
		assert.NotEmpty(t, ValidBedConfigs(models.RoomTypeTriple, 1))
		assert.NotEmpty(t, ValidBedConfigs(models.RoomTypeFamily, 2))
	})

	t.Run("every capacity up to the ceiling has options", func(t *testing.T) {
		for _, rt := range models.RoomTypes {
			for c := 1; c <= CapacityCeiling(rt); c++ {
				assert.NotEmpty(t, ValidBedConfigs(rt, c), "%s capacity %d", rt, c)
			}
		}
	})

	t.Run("out of range", func(t *testing.T) {
		assert.Nil(t, ValidBedConfigs(models.RoomTypeSingle, 2))
		assert.Nil(t, ValidBedConfigs(models.RoomTypeDouble, 0))
		assert.Nil(t, ValidBedConfigs(models.RoomType("dorm"), 2))
	})

	t.Run("result is a copy", func(t *testing.T) {
		configs := ValidBedConfigs(models.RoomTypeSingle, 1)
		configs[0].BedCount = 9
		assert.Equal(t, 1, ValidBedConfigs(models.RoomTypeSingle, 1)[0].BedCount)
	})
}

func TestIsValidBedConfig(t *testing.T) {
	assert.False(t, IsValidBedConfig(models.RoomTypeSingle, 1, 2, models.BedTypeDouble))
	assert.True(t, IsValidBedConfig(models.RoomTypeSingle, 1, 1, models.BedTypeSingle))
	assert.True(t, IsValidBedConfig(models.RoomTypeDouble, 2, 2, models.BedTypeSingle))
	assert.False(t, IsValidBedConfig(models.RoomTypeDouble, 3, 2, models.BedTypeSingle))

	t.Run("closure over the valid set", func(t *testing.T) {
		bedTypes := []models.BedType{
			models.BedTypeSingle, models.BedTypeDouble, models.BedTypeQueen,
			models.BedTypeKing, models.BedTypeDoubleSingle, models.BedTypeKingSingle,
		}
		for _, rt := range models.RoomTypes {
			for capacity := 0; capacity <= 7; capacity++ {
				valid := ValidBedConfigs(rt, capacity)
				for count := 0; count <= 6; count++ {
					for _, bt := range bedTypes {
						listed := false
						for _, c := range valid {
							if c.BedCount == count && c.BedType == bt {
								listed = true
							}
						}
						assert.Equal(t, listed, IsValidBedConfig(rt, capacity, count, bt), "%s/%d/%d/%s", rt, capacity, count, bt)
					}
				}
			}
		}
	})
}

func TestDefaultBedConfig(t *testing.T) {
	cfg, ok := DefaultBedConfig(models.RoomTypeDouble, 2)
	require.True(t, ok)
	assert.Equal(t, models.BedTypeDouble, cfg.BedType)
	assert.Equal(t, 1, cfg.BedCount)

	_, ok = DefaultBedConfig(models.RoomTypeSingle, 3)
	assert.False(t, ok)
}

func TestValidateBedConfig(t *testing.T) {
	tests := []struct {
		roomType    models.RoomType
		capacity    int
		bedCount    int
		bedType     models.BedType
		expectedErr error
		name        string
	}{
		{models.RoomTypeSingle, 1, 1, models.BedTypeSingle, nil, "valid single"},
		{models.RoomTypeQuad, 4, 2, models.BedTypeQueen, nil, "valid quad"},
		{models.RoomTypeSingle, 1, 2, models.BedTypeDouble, ErrInvalidBedConfig, "wrong beds for single"},
		{models.RoomTypeSingle, 2, 2, models.BedTypeSingle, ErrCapacityExceeded, "capacity above ceiling"},
		{models.RoomTypeDouble, 0, 1, models.BedTypeDouble, ErrInvalidCapacity, "zero capacity"},
		{models.RoomType("dorm"), 4, 4, models.BedTypeSingle, ErrUnknownRoomType, "unknown type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBedConfig(tc.roomType, tc.capacity, tc.bedCount, tc.bedType)
			if tc.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tc.expectedErr))

			var bcErr *BedConfigError
			require.True(t, errors.As(err, &bcErr))
			assert.NotEmpty(t, bcErr.Reason)
		})
	}

	t.Run("capacity overflow offers ceiling options", func(t *testing.T) {
		err := ValidateBedConfig(models.RoomTypeDouble, 3, 2, models.BedTypeSingle)
		var bcErr *BedConfigError
		require.True(t, errors.As(err, &bcErr))
		assert.Equal(t, ValidBedConfigs(models.RoomTypeDouble, 2), bcErr.ValidOptions)
	})
}

func TestCheckBedConfig(t *testing.T) {
	result := CheckBedConfig(models.RoomTypeSingle, 1, 2, models.BedTypeDouble)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Reason)
	assert.Equal(t, []models.BedConfig{{BedCount: 1, BedType: models.BedTypeSingle, Description: "1 cama individual"}}, result.ValidOptions)

	ok := CheckBedConfig(models.RoomTypeSuite, 2, 1, models.BedTypeKing)
	assert.True(t, ok.Valid)
	assert.Empty(t, ok.Reason)
	assert.Nil(t, ok.ValidOptions)
}
