package deck

// Merge copies into d every word and phrase of src whose key d does not
// already hold. Entries present in d are never overwritten. The returned
// headwords are the words that were added, sorted.
func (d *Deck) Merge(src *Deck) []string {
	d.ensureMaps()
	if src == nil {
		return nil
	}
	var added []string
	for _, headword := range src.Headwords() {
		if _, exists := d.Words[headword]; exists {
			continue
		}
		d.Words[headword] = src.Words[headword].Clone()
		added = append(added, headword)
	}
	for text, phrase := range src.Phrases {
		if _, exists := d.Phrases[text]; !exists {
			d.Phrases[text] = phrase
		}
	}
	return added
}

// Clone returns a deep copy of d.
func (d *Deck) Clone() *Deck {
	if d == nil {
		return nil
	}
	out := &Deck{
		Words:       make(map[string]Word, len(d.Words)),
		Phrases:     make(map[string]Phrase, len(d.Phrases)),
		Description: d.Description,
	}
	for key, w := range d.Words {
		out.Words[key] = w.Clone()
	}
	for key, p := range d.Phrases {
		out.Phrases[key] = p
	}
	return out
}
