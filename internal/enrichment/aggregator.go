package enrichment

// DeduplicateMeanings removes duplicate synonyms and antonyms across all
// meanings of all entries in place. The unique values, in first-seen order,
// are attached to the first meaning encountered overall; every other
// meaning's lists are cleared. Centralizing the deduplicated lists in one
// place avoids storing the same synonym once per part of speech.
func DeduplicateMeanings(entries []DictionaryEntry) {
	var allSynonyms, allAntonyms []string
	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			allSynonyms = append(allSynonyms, meaning.Synonyms...)
			allAntonyms = append(allAntonyms, meaning.Antonyms...)
		}
	}

	uniqueSynonyms := uniqueInOrder(allSynonyms)
	uniqueAntonyms := uniqueInOrder(allAntonyms)

	first := true
	for ei := range entries {
		for mi := range entries[ei].Meanings {
			if first {
				entries[ei].Meanings[mi].Synonyms = uniqueSynonyms
				entries[ei].Meanings[mi].Antonyms = uniqueAntonyms
				first = false
				continue
			}
			entries[ei].Meanings[mi].Synonyms = nil
			entries[ei].Meanings[mi].Antonyms = nil
		}
	}
}

// Extract normalizes a lexical-lookup response into a single Info record.
//
// Phonetics: the first variant of the first entry carrying a non-empty
// audio link supplies both the transcription text and the audio link. If no
// variant carries audio, the entry's top-level phonetic is used and the
// audio link stays empty.
//
// Meanings: synonym and antonym lists are appended in group order, then the
// definition of every sense in listed order; example sentences are appended
// only when present. All entries contribute, in response order.
func Extract(entries []DictionaryEntry) Info {
	var info Info
	if len(entries) == 0 {
		return info
	}

	info.Phonetic, info.AudioLink = extractPhonetic(entries[0])

	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			info.Synonyms = append(info.Synonyms, meaning.Synonyms...)
			info.Antonyms = append(info.Antonyms, meaning.Antonyms...)
			for _, def := range meaning.Definitions {
				info.Definitions = append(info.Definitions, def.Definition)
				if def.Example != "" {
					info.Examples = append(info.Examples, def.Example)
				}
			}
		}
	}

	return info
}

// extractPhonetic picks the transcription and audio link for an entry. Text
// and audio are never mixed from different variants.
func extractPhonetic(entry DictionaryEntry) (phonetic, audioLink string) {
	for _, p := range entry.Phonetics {
		if p.Audio != "" {
			return p.Text, p.Audio
		}
	}
	return entry.Phonetic, ""
}

// uniqueInOrder returns the distinct values of in, preserving the order of
// first occurrence. Returns nil for empty input.
func uniqueInOrder(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
