package imbens

// condenseClass grows a consistent subset of one over-represented class and
// returns the global row indices kept from it, in insertion order: the seeds
// first, then every candidate that forced a refit.
//
// The reference set starts as the minority rows plus the seeds. Candidates
// are visited in their original row order; a candidate the current model
// already classifies correctly is skipped, anything misclassified is
// absorbed into the reference set and the model refit before the scan moves
// on. Each candidate triggers at most one refit, so the scan performs at
// most len(classIdx) fits and batch predictions.
func condenseClass(
	clf Classifier,
	features [][]float64,
	labels []int,
	minorityIdx []int,
	classIdx []int,
	seedPositions []int,
	referenceMode bool,
) ([]int, error) {
	kept := make([]int, len(seedPositions))
	for i, p := range seedPositions {
		kept[i] = classIdx[p]
	}

	// refIdx is the training selection: minority rows, then everything kept.
	refIdx := make([]int, 0, len(minorityIdx)+len(kept))
	refIdx = append(refIdx, minorityIdx...)
	refIdx = append(refIdx, kept...)

	if err := fitSelection(clf, features, labels, refIdx); err != nil {
		return nil, err
	}

	// wellClassified marks candidate queue positions to skip. Seeds start
	// marked; every refit rebuilds the set from fresh batch predictions.
	wellClassified := make(map[int]bool, len(classIdx))
	markKept := func() {
		if referenceMode {
			// The reference skip set holds kept global indices but is probed
			// with queue positions.
			for _, g := range kept {
				wellClassified[g] = true
			}
			return
		}
		for _, p := range seedPositions {
			wellClassified[p] = true
		}
	}
	markKept()

	for pos, gidx := range classIdx {
		if wellClassified[pos] {
			continue
		}

		pred, err := predictSelection(clf, features, []int{gidx})
		if err != nil {
			return nil, err
		}
		if pred[0] == labels[gidx] {
			continue
		}

		kept = append(kept, gidx)
		refIdx = append(refIdx, gidx)
		if err := fitSelection(clf, features, labels, refIdx); err != nil {
			return nil, err
		}

		predAll, err := predictSelection(clf, features, classIdx)
		if err != nil {
			return nil, err
		}
		wellClassified = make(map[int]bool, len(classIdx))
		markKept()
		for p, g := range classIdx {
			if predAll[p] == labels[g] {
				wellClassified[p] = true
			}
		}
	}

	return kept, nil
}
