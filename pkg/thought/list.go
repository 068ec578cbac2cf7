package thought

// IndexOf returns the position of the thought whose ID or ClientID equals key.
func IndexOf(list []Thought, key string) int {
	if key == "" {
		return -1
	}
	for i := range list {
		if list[i].ID == key || list[i].ClientID == key {
			return i
		}
	}
	return -1
}

// IndexOfID returns the position of the confirmed thought with server id id.
// Provisional thoughts never match.
func IndexOfID(list []Thought, id string) int {
	if id == "" {
		return -1
	}
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}

// Prepend inserts t at the head and keeps at most limit entries.
func Prepend(list []Thought, t Thought, limit int) []Thought {
	out := make([]Thought, 0, len(list)+1)
	out = append(out, t)
	out = append(out, list...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// RemoveAt returns list without position i.
func RemoveAt(list []Thought, i int) []Thought {
	out := make([]Thought, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// Move relocates the entry at from to position to.
func Move(list []Thought, from, to int) ([]Thought, bool) {
	if from < 0 || from >= len(list) || to < 0 || to >= len(list) {
		return list, false
	}
	if from == to {
		return list, true
	}
	moved := list[from]
	out := RemoveAt(list, from)
	out = append(out, Thought{})
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out, true
}

// Active drops soft-deleted thoughts.
func Active(list []Thought) []Thought {
	out := make([]Thought, 0, len(list))
	for _, t := range list {
		if !t.IsDeleted {
			out = append(out, t)
		}
	}
	return out
}

// Clone deep-copies the slice headers that callers might mutate.
func Clone(list []Thought) []Thought {
	if list == nil {
		return nil
	}
	out := make([]Thought, len(list))
	for i, t := range list {
		if t.Tags != nil {
			t.Tags = append([]string(nil), t.Tags...)
		}
		if t.Session != nil {
			s := *t.Session
			t.Session = &s
		}
		out[i] = t
	}
	return out
}
