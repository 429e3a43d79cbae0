package catalog

// FlattenDatasets returns every dataset in the subtree rooted at n. A dataset
// node yields itself and its children are not visited.
func (n *Node) FlattenDatasets() []Dataset {
	return n.appendDatasets(nil)
}

func (n *Node) appendDatasets(out []Dataset) []Dataset {
	if n.IsDataset() {
		return append(out, n.dataset())
	}
	for i := range n.Children {
		out = n.Children[i].appendDatasets(out)
	}
	return out
}

// FlattenServices returns the services of the subtree rooted at n. A catalog
// node yields its own services, titled or not, without visiting children.
// Any other node collects its children's services and drops the untitled ones.
func (n *Node) FlattenServices() []Service {
	if n.IsCatalog() {
		return append([]Service(nil), n.Services...)
	}
	var out []Service
	for i := range n.Children {
		for _, s := range n.Children[i].FlattenServices() {
			if s.HasTitle() {
				out = append(out, s)
			}
		}
	}
	return out
}

// FlattenDatasetsAndServices returns datasets and titled services in
// document order. A dataset node yields itself. Any other node yields its
// own titled services followed by the entries of its children.
func (n *Node) FlattenDatasetsAndServices() []Entry {
	return n.appendEntries(nil)
}

func (n *Node) appendEntries(out []Entry) []Entry {
	if n.IsDataset() {
		ds := n.dataset()
		return append(out, Entry{Dataset: &ds})
	}
	for i := range n.Services {
		if n.Services[i].HasTitle() {
			svc := n.Services[i]
			out = append(out, Entry{Service: &svc})
		}
	}
	for i := range n.Children {
		out = n.Children[i].appendEntries(out)
	}
	return out
}
