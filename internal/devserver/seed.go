package devserver

import (
	"time"

	"ftms-portal/internal/core/domain"
	"ftms-portal/internal/pkg/password"
)

// Seed populates the store with a head of department, a few faculty
// accounts, and sample tasks so the client has something to show on
// first run. Every seeded account uses the password "password".
func Seed(store *Store) error {
	hash, err := password.Hash("password")
	if err != nil {
		return err
	}

	hod := store.AddUser("Dr. Priya Nair", "hod@ftms.local", domain.RoleHOD, "CSE", hash)
	f1 := store.AddUser("Arun Kumar", "faculty1@ftms.local", domain.RoleFaculty, "CSE", hash)
	f2 := store.AddUser("Meena Iyer", "faculty2@ftms.local", domain.RoleFaculty, "ECE", hash)
	store.AddUser("Admin", "admin@ftms.local", domain.RoleAdmin, "ADMIN", hash)

	now := time.Now()
	seedTasks := []domain.TaskDraft{
		{
			Title:            "Prepare semester lab manual",
			Description:      "Update the OS lab manual for the new syllabus.",
			DueAt:            now.Add(7 * 24 * time.Hour),
			AssignedToUserID: f1.ID,
		},
		{
			Title:            "Submit internal marks",
			Description:      "Upload internal assessment marks for all sections.",
			DueAt:            now.Add(48 * time.Hour),
			AssignedToUserID: f1.ID,
		},
		{
			Title:            "Department budget report",
			Description:      "Compile the equipment budget usage report.",
			DueAt:            now.Add(-24 * time.Hour), // already past due
			AssignedToUserID: f2.ID,
		},
	}
	for _, draft := range seedTasks {
		if _, err := store.CreateTask(draft, hod); err != nil {
			return err
		}
	}
	return nil
}
