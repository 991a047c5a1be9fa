package diag

// Code is a compact, stable identifier for a diagnostic kind, grouped by
// the component that raises it so a new heuristic can add codes in its
// own block without colliding with another component's.
type Code uint16

const (
	UnknownCode Code = 0

	// Header decoder (C1).
	HeaderInfo          Code = 1000
	MagicVariant        Code = 1001
	MagicUnknown        Code = 1002
	SpriteAbsent        Code = 1003
	ProjectRootAbsent   Code = 1004
	ManifestStringEmpty Code = 1005

	// Register locator (C2).
	RegisterInfo         Code = 2000
	RegisterFallbackUsed Code = 2001
	TrailingBytes        Code = 2002

	// Container scanner (C3).
	ContainerInfo            Code = 3000
	ResourceTruncated        Code = 3001
	ResourceFlagsNonStandard Code = 3002
	ColorMissing             Code = 3003
	DuplicateId              Code = 3004

	// Tree builder (C4).
	TreeInfo           Code = 4000
	DanglingRegisterId Code = 4001
	RegisterShortfall  Code = 4002
	SecondRoot         Code = 4003
)

func (c Code) String() string {
	switch c {
	case UnknownCode:
		return "UnknownCode"
	case HeaderInfo:
		return "HeaderInfo"
	case MagicVariant:
		return "MagicVariant"
	case MagicUnknown:
		return "MagicUnknown"
	case SpriteAbsent:
		return "SpriteAbsent"
	case ProjectRootAbsent:
		return "ProjectRootAbsent"
	case ManifestStringEmpty:
		return "ManifestStringEmpty"
	case RegisterInfo:
		return "RegisterInfo"
	case RegisterFallbackUsed:
		return "RegisterFallbackUsed"
	case TrailingBytes:
		return "TrailingBytes"
	case ContainerInfo:
		return "ContainerInfo"
	case ResourceTruncated:
		return "ResourceTruncated"
	case ResourceFlagsNonStandard:
		return "ResourceFlagsNonStandard"
	case ColorMissing:
		return "ColorMissing"
	case DuplicateId:
		return "DuplicateId"
	case TreeInfo:
		return "TreeInfo"
	case DanglingRegisterId:
		return "DanglingRegisterId"
	case RegisterShortfall:
		return "RegisterShortfall"
	case SecondRoot:
		return "SecondRoot"
	default:
		return "Code(?)"
	}
}
