package schemas

// Schema fragment builders used by the catalog. The x-field keyword carries
// the form control hint and is ignored by the validator.

type schemaNode = map[string]interface{}

func object(props schemaNode, required ...string) schemaNode {
	node := schemaNode{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		list := make([]interface{}, len(required))
		for i, key := range required {
			list[i] = key
		}
		node["required"] = list
	}
	return node
}

func text(def string) schemaNode {
	node := schemaNode{"type": "string"}
	if def != "" {
		node["default"] = def
	}
	return node
}

func longText() schemaNode {
	return schemaNode{"type": "string", "x-field": "textarea"}
}

func link(def string) schemaNode {
	node := schemaNode{"type": "string", "x-field": "url"}
	if def != "" {
		node["default"] = def
	}
	return node
}

func email() schemaNode {
	return schemaNode{"type": "string", "x-field": "email"}
}

func image() schemaNode {
	return schemaNode{"type": "string", "x-field": "media", "x-media": "image"}
}

func video() schemaNode {
	return schemaNode{"type": "string", "x-field": "media", "x-media": "video"}
}

func flag(def bool) schemaNode {
	return schemaNode{"type": "boolean", "default": def}
}

func number(minimum float64) schemaNode {
	return schemaNode{"type": "number", "minimum": minimum}
}

func choice(def string, values ...string) schemaNode {
	enum := make([]interface{}, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return schemaNode{"type": "string", "enum": enum, "default": def, "x-field": "select"}
}

func list(item schemaNode) schemaNode {
	return schemaNode{"type": "array", "items": item}
}

func button(defText, defLink string) schemaNode {
	return object(schemaNode{
		"text": text(defText),
		"link": link(defLink),
	})
}

func variant() schemaNode {
	return choice("primary", "primary", "secondary", "success", "warning", "danger", "info")
}
