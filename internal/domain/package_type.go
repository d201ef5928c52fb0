package domain

type TypeCode string

const (
	TypeCloth      TypeCode = "CL"
	TypeElectronic TypeCode = "EL"
	TypeOther      TypeCode = "VR"
)

var typeDisplayNames = map[TypeCode]string{
	TypeCloth:      "Одежда",
	TypeElectronic: "Электроника",
	TypeOther:      "Разное",
}

// DisplayName returns the human readable name of the type, or the code itself.
func (c TypeCode) DisplayName() string {
	if name, ok := typeDisplayNames[c]; ok {
		return name
	}
	return string(c)
}

type PackageType struct {
	ID   int64
	Code TypeCode
}
