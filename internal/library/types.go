package library

// PairRef points at the two sides of one bilingual subtitle pair on disk,
// e.g. show_en.srt / show_ru.srt sharing the basename "show".
type PairRef struct {
	Base          string // shared basename before the language suffix
	PrimaryPath   string
	SecondaryPath string
}

// ScanResult lists the valid pairs found under the scan roots and the
// subtitle files whose counterpart is missing.
type ScanResult struct {
	Pairs     []PairRef
	Unmatched []string
}
