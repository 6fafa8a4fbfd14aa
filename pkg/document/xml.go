package document

import (
	"fmt"

	"github.com/beevik/etree"
)

// EncodeXML renders a serialized value as an indented XML document,
// the transmittable encoding the simulated client consumes. Element
// order follows field order, so encoding is deterministic.
func EncodeXML(v any) (string, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	switch root := v.(type) {
	case *Object:
		appendObject(&doc.Element, root.Name, root)
	case *List:
		appendList(&doc.Element, root.Name, root)
	default:
		return "", fmt.Errorf("cannot encode %T as XML", v)
	}

	doc.Indent(2)
	return doc.WriteToString()
}

// appendObject emits the object under the given element name: the
// attribute name for nested relations, the type tag for roots and
// sequence items.
func appendObject(parent *etree.Element, name string, obj *Object) {
	el := parent.CreateElement(name)
	for _, f := range obj.Fields {
		switch v := f.Value.(type) {
		case *Object:
			appendObject(el, f.Name, v)
		case *List:
			appendList(el, f.Name, v)
		default:
			el.CreateElement(f.Name).SetText(fmt.Sprintf("%v", v))
		}
	}
}

func appendList(parent *etree.Element, name string, list *List) {
	el := parent.CreateElement(name)
	for _, item := range list.Items {
		appendObject(el, item.Name, item)
	}
}
