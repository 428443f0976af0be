package fingertree

// concatTrees joins two spines in O(log min(m,n)).
func concatTrees(m measurer, l, r tree) tree {
	return app3(m, l, nil, r)
}

// app3 concatenates l ++ ts ++ r. The seam digits regroup into 2-3 nodes
// and descend one level; the recursive middle concat is delayed.
func app3(m measurer, l tree, ts []any, r tree) tree {
	l = forced(l)
	r = forced(r)

	switch lv := l.(type) {
	case *emptyTree:
		return prependAll(m, ts, r)
	case *singleTree:
		return prependAll(m, ts, r).addFirst(m, lv.v)
	}
	switch rv := r.(type) {
	case *emptyTree:
		return appendAll(m, l, ts)
	case *singleTree:
		return appendAll(m, l, ts).addLast(m, rv.v)
	}

	ld := l.(*deepTree)
	rd := r.(*deepTree)

	seam := make([]any, 0, len(ld.sf)+len(ts)+len(rd.pr))
	seam = append(seam, ld.sf...)
	seam = append(seam, ts...)
	seam = append(seam, rd.pr...)
	mids := groupNodes(m, seam)

	lmid, rmid := ld.mid, rd.mid
	nm := nodeMeasurer{m}
	return newDeep(
		ld.pr,
		delay(func() tree { return app3(nm, lmid, mids, rmid) }),
		rd.sf,
	)
}

// groupNodes packs 2-12 seam elements into 2-3 nodes. Greedy threes with a
// 2-2 tail keeps every group legal.
func groupNodes(m measurer, xs []any) []any {
	out := make([]any, 0, (len(xs)+2)/3)
	for len(xs) > 4 {
		out = append(out, newNode(m, xs[0], xs[1], xs[2]))
		xs = xs[3:]
	}
	switch len(xs) {
	case 2:
		out = append(out, newNode(m, xs[0], xs[1]))
	case 3:
		out = append(out, newNode(m, xs[0], xs[1], xs[2]))
	case 4:
		out = append(out, newNode(m, xs[0], xs[1]), newNode(m, xs[2], xs[3]))
	}
	return out
}

func prependAll(m measurer, ts []any, t tree) tree {
	for i := len(ts) - 1; i >= 0; i-- {
		t = t.addFirst(m, ts[i])
	}
	return t
}

func appendAll(m measurer, t tree, ts []any) tree {
	for _, v := range ts {
		t = t.addLast(m, v)
	}
	return t
}
