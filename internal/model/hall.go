package model

// Hall describes a bookable lecture hall.  Halls are reference data: they
// are seeded by migrations and never modified by the application.
//
// Fields:
//  Code        – unique hall code (primary key).
//  Capacity    – number of seats.
//  Projectors  – number of installed projectors.
//  Blackboards – number of blackboards.
//  Whiteboards – number of whiteboards.
//  EduPad      – whether a writing pad is available.
type Hall struct {
	Code        string `json:"code"`        // halls.code
	Capacity    uint32 `json:"capacity"`    // halls.capacity
	Projectors  uint8  `json:"projectors"`  // halls.projectors
	Blackboards uint8  `json:"blackboards"` // halls.blackboards
	Whiteboards uint8  `json:"whiteboards"` // halls.whiteboards
	EduPad      bool   `json:"edupad"`      // halls.edupad
}
