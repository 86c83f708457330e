package dto

import "talent-board/internal/repository"

type SeekerResponse struct {
	User    UserResponse    `json:"user"`
	Profile ProfileResponse `json:"profile"`
}

func FromSeekerRows(rows []repository.SeekerRow) []SeekerResponse {
	out := make([]SeekerResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, SeekerResponse{
			User:    FromUser(r.User),
			Profile: FromProfile(r.Profile),
		})
	}
	return out
}
