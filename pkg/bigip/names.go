package bigip

import (
	"net/url"
	"strings"
)

// ResourceName is the canonical form of a BIG-IP object name. Name may contain
// "/" separated folders below the partition.
type ResourceName struct {
	Partition string
	Name      string
}

// ParseName accepts a bare name, a tilde form (~Partition~Name) or a full path
// (/Partition/Name). Bare names are placed in partition, or in DefaultPartition
// when partition is empty.
func ParseName(name, partition string) (ResourceName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ResourceName{}, validationErrorf("name must not be empty")
	}

	switch name[0] {
	case '~':
		return splitPath(name, "~")
	case '/':
		return splitPath(name, "/")
	}

	if strings.Contains(name, "~") {
		return ResourceName{}, validationErrorf("name %q mixes a bare name with '~' separators", name)
	}
	if partition == "" {
		partition = DefaultPartition
	}
	return ResourceName{Partition: partition, Name: name}, nil
}

func splitPath(raw, sep string) (ResourceName, error) {
	var parts []string
	for _, p := range strings.Split(raw, sep) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return ResourceName{}, validationErrorf("name %q must include a partition and an object name", raw)
	}
	return ResourceName{Partition: parts[0], Name: strings.Join(parts[1:], "/")}, nil
}

// Tilde renders the REST path form, e.g. ~Common~my_pool.
func (r ResourceName) Tilde() string {
	return "~" + r.Partition + "~" + strings.ReplaceAll(r.Name, "/", "~")
}

// FullPath renders the form the device reports in fullPath, e.g. /Common/my_pool.
func (r ResourceName) FullPath() string {
	return "/" + r.Partition + "/" + r.Name
}

func (r ResourceName) String() string {
	return r.FullPath()
}

// NormalizeName converts any accepted name form into the tilde form.
func NormalizeName(name, partition string) (string, error) {
	rn, err := ParseName(name, partition)
	if err != nil {
		return "", err
	}
	return rn.Tilde(), nil
}

// FullPath converts any accepted name form into the /Partition/Name form.
func FullPath(name, partition string) (string, error) {
	rn, err := ParseName(name, partition)
	if err != nil {
		return "", err
	}
	return rn.FullPath(), nil
}

// resourcePath builds /tm/ltm/<resource>[/<tilde name>]. Each segment between
// the structural '~' separators is path-escaped.
func resourcePath(resource, tilde string) string {
	p := "/tm/ltm/" + resource
	if tilde == "" {
		return p
	}
	segs := strings.Split(tilde, "~")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return p + "/" + strings.Join(segs, "~")
}
