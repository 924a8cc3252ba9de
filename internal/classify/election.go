package classify

// Observer is one connected client as seen by every other client.
type Observer struct {
	ID         string `json:"id"`
	Privileged bool   `json:"privileged"`
	Active     bool   `json:"active"`
}

// Elect picks the observer that reacts to an event authored by author. The
// choice depends only on the set of active observers, never on slice order:
// the lowest-ID privileged observer, else the author if still connected, else
// the lowest active ID. It reports false when nobody is connected.
func Elect(observers []Observer, author string) (string, bool) {
	var privileged, lowest string
	authorActive := false
	for _, o := range observers {
		if !o.Active || o.ID == "" {
			continue
		}
		if o.Privileged && (privileged == "" || o.ID < privileged) {
			privileged = o.ID
		}
		if lowest == "" || o.ID < lowest {
			lowest = o.ID
		}
		if author != "" && o.ID == author {
			authorActive = true
		}
	}

	switch {
	case privileged != "":
		return privileged, true
	case authorActive:
		return author, true
	case lowest != "":
		return lowest, true
	default:
		return "", false
	}
}

// ShouldAct reports whether self is the elected observer. Every observer
// evaluates it independently against the same connected set.
func ShouldAct(self string, observers []Observer, author string) bool {
	elected, ok := Elect(observers, author)
	return ok && elected == self
}
