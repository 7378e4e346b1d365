package container

import "github.com/pranshuparmar/portwho/pkg/model"

// Suggestion is a follow-up command shown to the user. It is never executed.
type Suggestion struct {
	Label   string
	Command string
}

// Suggestions returns the follow-up commands for one container.
func Suggestions(rt model.Runtime, id string) []Suggestion {
	bin := string(rt)
	return []Suggestion{
		{"Inspect", bin + " inspect " + id},
		{"Logs", bin + " logs -f " + id},
		{"Stop", bin + " stop " + id},
		{"Start", bin + " start " + id},
		{"Restart", bin + " restart " + id},
		{"Remove", bin + " rm -f " + id},
		{"Shell", bin + " exec -it " + id + " sh"},
	}
}
