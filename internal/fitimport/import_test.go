package fitimport

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tormoder/fit"

	"ridecoach/internal/store"
)

func buildTestFIT(t *testing.T, sport fit.Sport) []byte {
	t.Helper()

	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	if err != nil {
		t.Fatalf("new fit file: %v", err)
	}

	activity, err := file.Activity()
	if err != nil {
		t.Fatalf("activity accessor: %v", err)
	}

	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	session := fit.NewSessionMsg()
	session.Sport = sport
	session.StartTime = start
	session.Timestamp = start.Add(90 * time.Minute)
	session.TotalElapsedTime = 5400 * 1000 // ms
	session.TotalMovingTime = 5100 * 1000  // ms
	session.TotalDistance = 42000 * 100    // cm
	session.TotalAscent = 480
	session.AvgPower = 185
	session.NormalizedPower = 201
	session.AvgHeartRate = 142
	activity.Sessions = append(activity.Sessions, session)

	record := fit.NewRecordMsg()
	record.Timestamp = start.Add(30 * time.Second)
	record.HeartRate = 135
	record.Power = 245
	record.Cadence = 92
	activity.Records = append(activity.Records, record)

	var buf bytes.Buffer
	if err := fit.Encode(&buf, file, binary.LittleEndian); err != nil {
		t.Fatalf("encode fit: %v", err)
	}
	return buf.Bytes()
}

func writeFIT(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fit file: %v", err)
	}
	return path
}

func TestImportFile(t *testing.T) {
	s := store.OpenTest(t)
	im := NewImporter(s)

	path := writeFIT(t, t.TempDir(), "morning_ride.fit", buildTestFIT(t, fit.SportCycling))

	ride, err := im.ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile() error: %v", err)
	}

	if ride.Name != "morning_ride" {
		t.Errorf("Name = %q, want morning_ride", ride.Name)
	}
	if ride.ID >= 0 {
		t.Errorf("ID = %d, want negative for file imports", ride.ID)
	}
	if ride.Source != "fit" {
		t.Errorf("Source = %q, want fit", ride.Source)
	}
	if ride.MovingTime != 5100 {
		t.Errorf("MovingTime = %d, want 5100", ride.MovingTime)
	}
	if ride.Distance != 42000 {
		t.Errorf("Distance = %v, want 42000", ride.Distance)
	}
	if ride.ElevationGain != 480 {
		t.Errorf("ElevationGain = %v, want 480", ride.ElevationGain)
	}
	if ride.AveragePower == nil || *ride.AveragePower != 185 {
		t.Errorf("AveragePower = %v, want 185", ride.AveragePower)
	}
	if ride.WeightedPower == nil || *ride.WeightedPower != 201 {
		t.Errorf("WeightedPower = %v, want 201", ride.WeightedPower)
	}
	if ride.AverageHR == nil || *ride.AverageHR != 142 {
		t.Errorf("AverageHR = %v, want 142", ride.AverageHR)
	}

	// Ride should be queryable from the store afterward
	stored, err := s.GetRide(context.Background(), ride.ID)
	if err != nil {
		t.Fatalf("GetRide() after import: %v", err)
	}
	if !stored.StartDate.Equal(ride.StartDate) {
		t.Errorf("stored StartDate = %v, want %v", stored.StartDate, ride.StartDate)
	}
}

func TestImportFileNotCycling(t *testing.T) {
	s := store.OpenTest(t)
	im := NewImporter(s)

	path := writeFIT(t, t.TempDir(), "run.fit", buildTestFIT(t, fit.SportRunning))

	_, err := im.ImportFile(path)
	if !errors.Is(err, ErrNotCycling) {
		t.Errorf("ImportFile() error = %v, want ErrNotCycling", err)
	}
}

func TestImportDir(t *testing.T) {
	s := store.OpenTest(t)
	im := NewImporter(s)
	dir := t.TempDir()

	writeFIT(t, dir, "ride_one.fit", buildTestFIT(t, fit.SportCycling))
	writeFIT(t, dir, "run.fit", buildTestFIT(t, fit.SportRunning))
	writeFIT(t, dir, "garbage.fit", []byte("not a fit file"))
	writeFIT(t, dir, "notes.txt", []byte("ignored"))

	result, err := im.ImportDir(dir)
	if err != nil {
		t.Fatalf("ImportDir() error: %v", err)
	}

	if result.Imported != 1 {
		t.Errorf("Imported = %d, want 1", result.Imported)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if len(result.Errors) != 1 {
		t.Errorf("Errors = %v, want one decode failure", result.Errors)
	}

	count, err := s.CountRides(context.Background())
	if err != nil {
		t.Fatalf("CountRides() error: %v", err)
	}
	if count != 1 {
		t.Errorf("stored rides = %d, want 1", count)
	}
}
