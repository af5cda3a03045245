// Package resource shapes models into the JSON an endpoint returns, so the
// wire format is decided in one place per model rather than by struct tags:
//
//	func BookResource(b models.Book) resource.Map {
//	    return resource.Map{
//	        "id":    b.ID,
//	        "title": b.Title,
//	        "links": resource.Map{"image": "/books/" + b.ID.String() + "/image"},
//	    }
//	}
//
//	c.Success(resource.Item(book, BookResource))
//	c.Success(resource.Collection(books, BookResource))
package resource

// Map is one transformed object.
type Map = map[string]interface{}

// Transformer converts one model into a Map.
type Transformer[T any] func(T) Map

// Item transforms a single model.
func Item[T any](v T, t Transformer[T]) Map {
	return t(v)
}

// Collection transforms every element. An empty input yields an empty,
// non-nil slice so it encodes as [] rather than null.
func Collection[T any](items []T, t Transformer[T]) []Map {
	out := make([]Map, 0, len(items))
	for _, v := range items {
		out = append(out, t(v))
	}
	return out
}

// With returns a copy of m with extra merged in, extra winning on conflict.
func With(m Map, extra Map) Map {
	out := make(Map, len(m)+len(extra))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
