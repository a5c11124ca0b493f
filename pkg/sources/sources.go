package sources

// Story is one normalized Hacker News discussion item.
type Story struct {
	ID       int
	Title    string
	URL      string
	Score    int
	By       string
	Time     int64
	Comments int
}

// Paper is one normalized arXiv submission.
type Paper struct {
	Title     string
	Authors   []string
	Abstract  string
	URL       string
	Published string
}

// Release is one recent release event from a tracked repository.
type Release struct {
	Repo  string
	Tag   string
	Title string
}
