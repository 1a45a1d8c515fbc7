package fgcode

import "fmt"

type Family int

const (
	ChannelStraight Family = iota
	ChannelCorner
	InnerCornerStraight
	InnerCornerCorner
	JStraight
	JCorner
	TProfile
	Misc
)

func (f Family) String() string {
	switch f {
	case ChannelStraight:
		return "channel-straight"
	case ChannelCorner:
		return "channel-corner"
	case InnerCornerStraight:
		return "inner-corner-straight"
	case InnerCornerCorner:
		return "inner-corner-corner"
	case JStraight:
		return "j-straight"
	case JCorner:
		return "j-corner"
	case TProfile:
		return "t-profile"
	case Misc:
		return "misc"
	default:
		return "unknown"
	}
}

// Corner reports whether the family carries two cut lengths.
func (f Family) Corner() bool {
	return f == ChannelCorner || f == InnerCornerCorner || f == JCorner
}

// Closed membership sets, one per family. A symbol belongs to exactly one.
var (
	channelStraight = map[string]bool{
		"B": true, "CP": true, "CPP": true, "CPPP": true, "D": true, "K": true,
		"PC": true, "PH": true, "PLB": true, "SB": true, "T": true, "TS": true,
		"W": true, "WR": true, "WRB": true, "WS": true, "WX": true, "WXS": true,
	}

	channelCorner = map[string]bool{
		"BC": true, "BCE": true, "KC": true, "KCE": true,
	}

	innerCornerStraight = map[string]bool{
		"CC": true, "CCL": true, "CCR": true, "IC": true, "ICB": true,
		"ICT": true, "ICX": true, "LS": true, "LSL": true, "LSR": true,
		"LSW": true, "SL": true, "SLR": true,
	}

	innerCornerCorner = map[string]bool{
		"SC": true, "SCE": true, "SCY": true, "SCZ": true, "LSC": true, "LSCE": true,
	}

	jStraight = map[string]bool{
		"JL": true, "JLB": true, "JLT": true, "JLX": true,
		"JR": true, "JRB": true, "JRT": true, "JRX": true, "SX": true,
	}

	jCorner = map[string]bool{
		"SXC": true, "SXCE": true,
	}

	tProfile = map[string]bool{
		"PCE": true, "SBE": true, "TSE": true, "WRBSE": true,
		"WRSE": true, "WSE": true, "WXSE": true,
	}

	misc = map[string]bool{
		"DP": true, "EB": true, "MB": true, "EC": true, "ECH": true,
		"ECT": true, "ECX": true, "ECB": true, "RK": true,
	}
)

type UnknownProfileError struct {
	Profile string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown profile symbol %q", e.Profile)
}

// Classify maps a profile symbol to its family. An unrecognized symbol fails
// derivation for that one component only, the batch keeps going.
func Classify(profile string) (Family, error) {
	switch {
	case channelStraight[profile]:
		return ChannelStraight, nil
	case channelCorner[profile]:
		return ChannelCorner, nil
	case innerCornerStraight[profile]:
		return InnerCornerStraight, nil
	case innerCornerCorner[profile]:
		return InnerCornerCorner, nil
	case jStraight[profile]:
		return JStraight, nil
	case jCorner[profile]:
		return JCorner, nil
	case tProfile[profile]:
		return TProfile, nil
	case misc[profile]:
		return Misc, nil
	default:
		return 0, &UnknownProfileError{Profile: profile}
	}
}
