package domain

import "strconv"

// ProjectID identifies one project. Every real-time room is scoped to a
// project, so this doubles as the room key.
type ProjectID int64

// UserID is the integer identity a connection claims within a room.
type UserID int64

// WorkspaceID identifies a workspace for the online-members stream.
type WorkspaceID int64

func (id ProjectID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id WorkspaceID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseProjectID parses the path segment form of a project id.
func ParseProjectID(s string) (ProjectID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	return ProjectID(n), err
}

// ParseWorkspaceID parses the path segment form of a workspace id.
func ParseWorkspaceID(s string) (WorkspaceID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	return WorkspaceID(n), err
}
