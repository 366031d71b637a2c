package models

// TripFilter represents filter parameters for querying trips
type TripFilter struct {
	StartTime      int64  `form:"startTime"` // Unix ms
	EndTime        int64  `form:"endTime"`   // Unix ms
	BikeType       string `form:"bikeType"`  // classic, ebike
	Source         string `form:"source"`    // account, dataset
	DistanceBucket string `form:"distanceBucket"`
	TimeOfDay      string `form:"timeOfDay"`
	Normalized     string `form:"normalized"` // "true" / "false" / "" (all)
	Page           int    `form:"page"`
	PageSize       int    `form:"pageSize"`
}
