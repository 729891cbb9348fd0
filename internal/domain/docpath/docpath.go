// Package docpath builds the document-store collection paths for a user's
// subtree: users/{uid}/todoLists and users/{uid}/todoLists/{listId}/tasks.
package docpath

import "strings"

const (
	usersCollection = "users"
	listsCollection = "todoLists"
	tasksCollection = "tasks"
)

// Lists returns the collection path holding uid's lists.
func Lists(uid string) string {
	return join(usersCollection, uid, listsCollection)
}

// Tasks returns the collection path holding the tasks of listID.
func Tasks(uid, listID string) string {
	return join(usersCollection, uid, listsCollection, listID, tasksCollection)
}

// Doc returns the path of document id within collection.
func Doc(collection, id string) string {
	return join(collection, id)
}

// Split separates a document path into its collection path and id.
// It returns ok=false when path has no "/".
func Split(path string) (collection, id string, ok bool) {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "", "", false
	}
	return path[:i], path[i+1:], true
}

func join(segments ...string) string {
	return strings.Join(segments, "/")
}
