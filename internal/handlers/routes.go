package handlers

import "github.com/go-chi/chi/v5"

func Routes(r chi.Router, th *TaskHandler, ch *CategoryHandler, dh *DashboardHandler) {
	r.Get("/health", th.HealthCheck)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", th.GetTasks)  // GET /tasks?search=&status=&category=&priority=
		r.Post("/", th.PostTask) // POST /tasks

		r.Get("/status/{status}", th.GetTasksByStatus)       // GET /tasks/status/{status}
		r.Get("/priority/{priority}", th.GetTasksByPriority) // GET /tasks/priority/{priority}

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", th.GetTaskByID)   // GET /tasks/{id}
			r.Patch("/", th.PatchTask)   // PATCH /tasks/{id}
			r.Delete("/", th.DeleteTask) // DELETE /tasks/{id}
			r.Post("/toggle", th.ToggleTask)
			r.Post("/edit", th.EditTask)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", ch.GetCategories)
		r.Post("/", ch.PostCategory)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", ch.GetCategoryByID)
			r.Patch("/", ch.PatchCategory)
			r.Delete("/", ch.DeleteCategory)
			r.Get("/tasks", ch.GetCategoryTasks)
		})
	})

	r.Get("/stats", dh.GetStats)

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", dh.GetDashboard)
		r.Put("/category", dh.SelectCategory)
		r.Put("/search", dh.SetSearch)
		r.Put("/filter", dh.SetFilter)
		r.Post("/tasks", dh.QuickAdd)
	})
}
