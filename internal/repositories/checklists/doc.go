// Package checklists is the authoritative store of inspection records.
//
// The whole collection lives under one backend key ("checklists") as a JSON
// array. Every operation loads the collection, and mutations rewrite it
// wholesale. An id→position index is rebuilt on each load so lookups and
// in-place replacement do not rescan the slice.
//
// Reads fail closed: ListAll and GetByID report a backend or decode failure
// as "no records" and log it. Mutations instead abort with common.ErrStorage
// when the collection cannot be read, so a transient read failure never
// overwrites stored records with an empty view.
//
// Typical Usage
//
//	store := checklists.NewStore(backend, checklists.WithLogger(log))
//	_ = store.Upsert(ctx, rec)
//	rec, ok := store.GetByID(ctx, id)
//	all := store.ListAll(ctx)
//	_ = store.DeleteByID(ctx, id)
package checklists
