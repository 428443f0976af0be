package fingertree

// splitPair partitions t around the first element at which the running
// prefix measure satisfies pred. If the predicate never flips, the whole
// tree is the left part. pred must be monotone (false then true) over
// prefix sums; for a non-monotonic predicate the result is still a valid
// partition of the sequence, but which one is unspecified.
func splitPair(m measurer, pred func(any) bool, t tree) (tree, tree) {
	t = forced(t)
	if t.isEmpty() {
		return sharedEmpty, sharedEmpty
	}
	if !pred(t.meas(m)) {
		return t, sharedEmpty
	}
	l, x, r := splitTree(m, pred, m.identity(), t)
	return l, r.addFirst(m, x)
}

// splitTree splits a non-empty spine into (left, pivot, right) where the
// pivot is the element at which the running measure first satisfies pred.
// Precondition: pred flips somewhere in t given the accumulated measure acc.
func splitTree(m measurer, pred func(any) bool, acc any, t tree) (tree, any, tree) {
	switch tv := forced(t).(type) {
	case *singleTree:
		return sharedEmpty, tv.v, sharedEmpty

	case *deepTree:
		nm := nodeMeasurer{m}

		accPr := m.sum(acc, tv.pr.meas(m))
		if pred(accPr) {
			l, x, r := splitDigit(m, pred, acc, tv.pr)
			return digitToTree(l), x, deepLeft(m, r, tv.mid, tv.sf)
		}

		accMid := accPr
		if !tv.mid.isEmpty() {
			accMid = m.sum(accPr, tv.mid.meas(nm))
			if pred(accMid) {
				ml, pivot, mr := splitTree(nm, pred, accPr, tv.mid)
				n := pivot.(*node)
				accML := accPr
				if !ml.isEmpty() {
					accML = m.sum(accPr, ml.meas(nm))
				}
				l, x, r := splitDigit(m, pred, accML, digit(n.children))
				return deepRight(m, tv.pr, ml, l), x, deepLeft(m, r, mr, tv.sf)
			}
		}

		l, x, r := splitDigit(m, pred, accMid, tv.sf)
		return deepRight(m, tv.pr, tv.mid, l), x, digitToTree(r)
	}
	// Unreachable: callers guarantee a non-empty, forced spine.
	return sharedEmpty, nil, sharedEmpty
}

// splitDigit finds the flip element within a digit. If the predicate never
// flips here the last element is the pivot by exhaustion (the caller's
// measure guard ensures the flip is in this digit for monotone predicates).
func splitDigit(m measurer, pred func(any) bool, acc any, d digit) (digit, any, digit) {
	for i := 0; i < len(d)-1; i++ {
		acc = m.sum(acc, m.measure(d[i]))
		if pred(acc) {
			return d[:i], d[i], d[i+1:]
		}
	}
	return d[:len(d)-1], d[len(d)-1], nil
}

// deepLeft rebuilds a spine whose left digit may be empty, promoting from
// the middle when needed.
func deepLeft(m measurer, pr digit, mid tree, sf digit) tree {
	if len(pr) > 0 {
		return newDeep(pr, mid, sf)
	}
	if mid.isEmpty() {
		return digitToTree(sf)
	}
	n := mid.peekFirst().(*node)
	nm := nodeMeasurer{m}
	rest := mid
	return newDeep(
		digit(n.children),
		delay(func() tree { return rest.removeFirst(nm) }),
		sf,
	)
}

// deepRight mirrors deepLeft for an empty right digit.
func deepRight(m measurer, pr digit, mid tree, sf digit) tree {
	if len(sf) > 0 {
		return newDeep(pr, mid, sf)
	}
	if mid.isEmpty() {
		return digitToTree(pr)
	}
	n := mid.peekLast().(*node)
	nm := nodeMeasurer{m}
	rest := mid
	return newDeep(
		pr,
		delay(func() tree { return rest.removeLast(nm) }),
		digit(n.children),
	)
}
