package arinc665

// Version identifies a family of ARINC 665 binary supplements that this
// codec can target. Supplements 3, 4 and 5 share one on-disk layout and are
// treated as a single family; only Supplement 2 and Supplement 3/4/5 are
// supported, per spec.
type Version int

const (
	// Supplement2 covers ARINC 665-2 file-format versions.
	Supplement2 Version = iota + 1
	// Supplement345 covers ARINC 665-3, -4 and -5 file-format versions,
	// which share one binary layout extended via named expansion points.
	Supplement345
)

func (v Version) String() string {
	switch v {
	case Supplement2:
		return "Supplement2"
	case Supplement345:
		return "Supplement345"
	default:
		return "UnknownVersion"
	}
}

// FormatVersion is the raw 16-bit "File Format Version" field stored at
// offset 4 of every ARINC 665 file envelope.
type FormatVersion uint16

// Known format version tags. Only a representative value per supplement is
// named; VersionOf accepts the full documented ranges.
const (
	FormatVersion2   FormatVersion = 0x8003
	FormatVersion345 FormatVersion = 0x8005
)

// VersionOf classifies a raw on-disk FormatVersion into its Version family,
// or returns ok=false if the tag falls outside both documented ranges.
func VersionOf(fv FormatVersion) (v Version, ok bool) {
	switch {
	case fv >= 0x8001 && fv <= 0x8002:
		return Supplement2, true // pre-Supplement-2 FileListFile-only tags also fold here
	case fv >= 0x8003 && fv <= 0x8004:
		return Supplement2, true
	case fv >= 0x8005:
		return Supplement345, true
	default:
		return 0, false
	}
}

// FormatVersionFor returns the canonical on-disk tag this codec writes when
// encoding for the given Version.
func FormatVersionFor(v Version) (FormatVersion, error) {
	switch v {
	case Supplement2:
		return FormatVersion2, nil
	case Supplement345:
		return FormatVersion345, nil
	default:
		return 0, ErrUnsupportedVersion
	}
}
