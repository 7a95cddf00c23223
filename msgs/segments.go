package msgs

const DEFAULT_SEGMENT_SIZE int64 = 1 * 1024 * 1024

var segmentSizes = map[string]int64{
	LocalPositionChannel:      DEFAULT_SEGMENT_SIZE,
	TripletSetpointChannel:    DEFAULT_SEGMENT_SIZE,
	TrajectorySetpointChannel: DEFAULT_SEGMENT_SIZE,
	FlightdInChannel:          DEFAULT_SEGMENT_SIZE,
	FlightdExtendedOutChannel: 4 * 1024 * 1024,
}

func GetSegmentSize(name string) int64 {
	if size, ok := segmentSizes[name]; ok {
		return size
	}
	return DEFAULT_SEGMENT_SIZE
}
