package handler

import (
	"fmt"
	"net/http"

	"github.com/tfgkk/schoolcomp/internal/database"
)

func (s *HandlerTestSuite) TestListCompetitionsNewestFirst() {
	s.createCompetition(&database.Competition{Title: "Math Olympiad"})
	s.createCompetition(&database.Competition{Title: "Essay Contest"})

	w := s.do(http.MethodGet, "/api/competitions")
	s.Require().Equal(http.StatusOK, w.Code)

	var competitions []database.Competition
	s.decode(w, &competitions)
	s.Require().Len(competitions, 2)
	s.Equal("Essay Contest", competitions[0].Title)
	s.Equal("Math Olympiad", competitions[1].Title)
}

func (s *HandlerTestSuite) TestListCompetitionsKeyword() {
	s.createCompetition(&database.Competition{Title: "Math Olympiad", Description: "algebra"})
	s.createCompetition(&database.Competition{Title: "Essay Contest", Description: "writing"})

	w := s.do(http.MethodGet, "/api/competitions?keyword=math")
	s.Require().Equal(http.StatusOK, w.Code)

	var competitions []database.Competition
	s.decode(w, &competitions)
	s.Require().Len(competitions, 1)
	s.Equal("Math Olympiad", competitions[0].Title)
}

func (s *HandlerTestSuite) TestCreateCompetition() {
	w := s.doJSON(http.MethodPost, "/api/competitions", map[string]string{
		"title":       "Physics Cup",
		"description": "annual physics competition",
	})
	s.Require().Equal(http.StatusOK, w.Code)

	var created database.Competition
	s.decode(w, &created)
	s.NotZero(created.ID)
	s.False(created.CreateTime.IsZero())
}

func (s *HandlerTestSuite) TestDeleteCompetitionCascades() {
	competition := database.Competition{Title: "Math Olympiad"}
	s.createCompetition(&competition)
	s.createRegistration(&database.Registration{CompetitionID: competition.ID, StudentID: "S100"})
	s.createRegistration(&database.Registration{CompetitionID: competition.ID, StudentID: "S101"})

	w := s.do(http.MethodDelete, fmt.Sprintf("/api/competitions/%d", competition.ID))
	s.Require().Equal(http.StatusOK, w.Code)

	list := s.do(http.MethodGet, fmt.Sprintf("/api/registrations?competitionId=%d", competition.ID))
	s.Require().Equal(http.StatusOK, list.Code)
	var registrations []database.Registration
	s.decode(list, &registrations)
	s.Empty(registrations)

	all := s.do(http.MethodGet, "/api/competitions")
	var competitions []database.Competition
	s.decode(all, &competitions)
	s.Empty(competitions)
}

func (s *HandlerTestSuite) TestDeleteCompetitionInvalidID() {
	w := s.do(http.MethodDelete, "/api/competitions/abc")
	s.Equal(http.StatusBadRequest, w.Code)
}
