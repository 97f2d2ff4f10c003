package service

import (
	"context"
	"fmt"
	"time"

	"ridecoach/internal/store"
	"ridecoach/internal/strava"
)

const lastSyncKey = "last_ride_sync"

// SyncService pulls ride summaries from Strava into the local store.
type SyncService struct {
	client *strava.Client
	store  *store.Store
}

func NewSyncService(client *strava.Client, store *store.Store) *SyncService {
	return &SyncService{
		client: client,
		store:  store,
	}
}

// SyncProgress reports progress during sync
type SyncProgress struct {
	Total  int
	Stored int
	Error  error
}

// SyncResult contains the results of a sync operation
type SyncResult struct {
	ActivitiesFetched int
	RidesStored       int
	Skipped           int
	Errors            []error
}

// Sync fetches activity summaries newer than the last sync and stores the
// rides. Summary data is all the analysis needs; streams are never fetched.
func (s *SyncService) Sync(ctx context.Context, progress chan<- SyncProgress) (*SyncResult, error) {
	if progress != nil {
		defer close(progress)
	}

	result := &SyncResult{}

	lastSyncStr, _ := s.store.GetSyncState(lastSyncKey)
	var after time.Time
	if lastSyncStr != "" {
		after, _ = time.Parse(time.RFC3339, lastSyncStr)
	}

	page := 1
	perPage := 100

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		activities, err := s.client.GetActivities(ctx, after, page, perPage)
		if err != nil {
			return result, fmt.Errorf("fetching page %d: %w", page, err)
		}

		if len(activities) == 0 {
			break
		}

		result.ActivitiesFetched += len(activities)

		for _, a := range activities {
			if !a.IsRide() {
				result.Skipped++
				continue
			}
			ride := convertActivity(a)
			if err := s.store.UpsertRide(ride); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("storing ride %d: %w", a.ID, err))
				continue
			}
			result.RidesStored++
		}

		if progress != nil {
			progress <- SyncProgress{
				Total:  result.ActivitiesFetched,
				Stored: result.RidesStored,
			}
		}

		if len(activities) < perPage {
			break // Last page
		}

		page++
	}

	s.store.SetSyncState(lastSyncKey, time.Now().Format(time.RFC3339))

	return result, nil
}

// RateLimitStatus returns the current rate limit status from the client
func (s *SyncService) RateLimitStatus() (shortRemaining, dailyRemaining int) {
	return s.client.RateLimitStatus()
}

// convertActivity converts a Strava API activity to a store ride.
func convertActivity(a strava.Activity) *store.Ride {
	ride := &store.Ride{
		ID:            a.ID,
		AthleteID:     a.Athlete.ID,
		Name:          a.Name,
		StartDate:     a.StartDate,
		MovingTime:    a.MovingTime,
		ElapsedTime:   a.ElapsedTime,
		Distance:      a.Distance,
		ElevationGain: a.TotalElevationGain,
		Source:        "strava",
	}

	if a.AverageWatts > 0 {
		ride.AveragePower = &a.AverageWatts
	}
	// Weighted power only means something when it came from a real power
	// meter, not Strava's estimate.
	if a.WeightedAvgWatts > 0 && a.DeviceWatts {
		ride.WeightedPower = &a.WeightedAvgWatts
	}
	if a.SufferScore > 0 {
		ride.TrainingStress = &a.SufferScore
	}
	if a.AverageHeartrate > 0 {
		ride.AverageHR = &a.AverageHeartrate
	}

	return ride
}
