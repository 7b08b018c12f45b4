package commands_test

import (
	"testing"

	"iotstream/internal/core/application/usecases/commands"
	"iotstream/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIngestReadingCommand_ValidData_Success(t *testing.T) {
	// Arrange
	battery := 87.5
	raw := `{"seq":42}`

	// Act
	cmd, err := commands.NewIngestReadingCommand("thermo-42", 21.5, "temperature", "C", &battery, &raw)

	// Assert
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	reading := cmd.Reading()
	assert.Equal(t, "thermo-42", reading.DeviceID())
	assert.InDelta(t, 21.5, reading.Value(), 0.0001)
	assert.Equal(t, "temperature", reading.ReadingType())
	assert.Equal(t, "C", reading.Unit())
	require.NotNil(t, reading.BatteryLevel())
	assert.InDelta(t, battery, *reading.BatteryLevel(), 0.0001)
	require.NotNil(t, reading.RawData())
	assert.Equal(t, raw, *reading.RawData())
}

func TestNewIngestReadingCommand_OptionalFieldsAbsent_Success(t *testing.T) {
	// Act
	cmd, err := commands.NewIngestReadingCommand("thermo-42", -3.2, "temperature", "C", nil, nil)

	// Assert
	require.NoError(t, err)
	assert.Nil(t, cmd.Reading().BatteryLevel())
	assert.Nil(t, cmd.Reading().RawData())
}

func TestNewIngestReadingCommand_InvalidData_Error(t *testing.T) {
	over := 101.0
	longID := make([]byte, 51)
	for i := range longID {
		longID[i] = 'x'
	}

	tests := []struct {
		name        string
		deviceID    string
		readingType string
		unit        string
		battery     *float64
		wantErr     error
	}{
		{"empty_device_id", "", "temperature", "C", nil, errs.ErrValueIsRequired},
		{"device_id_too_long", string(longID), "temperature", "C", nil, errs.ErrValueIsOutOfRange},
		{"empty_reading_type", "thermo-42", "", "C", nil, errs.ErrValueIsRequired},
		{"empty_unit", "thermo-42", "temperature", "", nil, errs.ErrValueIsRequired},
		{"battery_out_of_range", "thermo-42", "temperature", "C", &over, errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewIngestReadingCommand(tt.deviceID, 21.5, tt.readingType, tt.unit, tt.battery, nil)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIngestReadingCommand_ZeroValue_FailsValidation(t *testing.T) {
	// Arrange
	var cmd commands.IngestReadingCommand

	// Act
	err := cmd.Validate()

	// Assert
	require.ErrorIs(t, err, commands.ErrIngestReadingCommandIsNotConstructed)
}
