package curriculum

type Difficulty string

const (
	BEGINNER     Difficulty = "BEGINNER"
	INTERMEDIATE Difficulty = "INTERMEDIATE"
	ADVANCED     Difficulty = "ADVANCED"
)

var AllDifficulties = []Difficulty{
	BEGINNER,
	INTERMEDIATE,
	ADVANCED,
}

func (d Difficulty) IsValid() bool {
	for _, v := range AllDifficulties {
		if d == v {
			return true
		}
	}
	return false
}
