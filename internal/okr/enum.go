package okr

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

var AllStatuses = []Status{
	StatusActive,
	StatusCompleted,
	StatusArchived,
}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

var AllQuarters = []Quarter{Q1, Q2, Q3, Q4}

func (q Quarter) IsValid() bool {
	for _, v := range AllQuarters {
		if q == v {
			return true
		}
	}
	return false
}

const (
	MinYear = 2020
	MaxYear = 2030
)
