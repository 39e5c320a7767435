// Package task holds the task model and the store that owns the task collection.
//
// A task file is a JSON array of task records:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "buy milk",
//	    "status": "todo",
//	    "created": "2026-10-18",
//	    "updated": "2026-10-18"
//	  }
//	]
//
// # Task Status Values
//
//   - "todo": Task is pending (initial status)
//   - "in-progress": Task is being worked on
//   - "completed": Task is complete
//
// # IDs
//
// IDs are assigned by the store as one past the highest existing id. Deleting
// a task never renumbers the others. Batch operations (Delete, SetStatus)
// validate every id before touching the collection and report all unknown ids
// in a single InvalidIDError.
//
// # Descriptions
//
// A description must be non-blank and narrower than DescriptionLimit(width)
// display columns, where width is the terminal width the task table is
// rendered into.
package task
