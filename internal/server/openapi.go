package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/quizrally/api/internal/game"
	"github.com/quizrally/api/internal/quizstore"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "QuizRally API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for live team trivia sessions.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/games/{code}
	getGameByCode, _ := r.NewOperationContext(http.MethodGet, "/api/games/{code}")
	getGameByCode.SetSummary("Look up game by join code")
	getGameByCode.SetDescription("Resolves a join code into the public game view: name, phase, and teams without scores.")
	getGameByCode.AddRespStructure(game.PublicDetail{}, openapi.WithHTTPStatus(http.StatusOK))
	getGameByCode.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGameByCode)

	// POST /api/games/{gameID}/teams
	postTeam, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/teams")
	postTeam.SetSummary("Create team")
	postTeam.SetDescription("Creates a new team in the game. Open to players; no credential required.")
	postTeam.AddReqStructure(CreateTeamRequest{})
	postTeam.AddRespStructure(game.TeamInfo{}, openapi.WithHTTPStatus(http.StatusCreated))
	postTeam.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postTeam.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postTeam)

	// POST /api/games/{gameID}/join
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/join")
	postJoin.SetSummary("Join a team")
	postJoin.SetDescription("Adds a player to an existing team with a starting score of zero.")
	postJoin.AddReqStructure(JoinRequest{})
	postJoin.AddRespStructure(game.PlayerInfo{}, openapi.WithHTTPStatus(http.StatusOK))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(postJoin)

	// POST /api/games/{gameID}/answers
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/answers")
	postAnswer.SetSummary("Submit answer")
	postAnswer.SetDescription("Records a player's answer for the current question. Only accepted while questioning; resubmitting overwrites the earlier answer.")
	postAnswer.AddReqStructure(AnswerRequest{})
	postAnswer.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postAnswer)

	// GET /api/games/{gameID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of new_question, correct_option, and end events for the game.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	getEvents.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getEvents)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with username and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the currently authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/quizzes
	listQuizzes, _ := r.NewOperationContext(http.MethodGet, "/api/admin/quizzes")
	listQuizzes.SetSummary("List quizzes")
	listQuizzes.SetDescription("Returns all quizzes. Requires admin_session cookie.")
	listQuizzes.AddRespStructure([]quizstore.Quiz{}, openapi.WithHTTPStatus(http.StatusOK))
	listQuizzes.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listQuizzes)

	// POST /api/admin/quizzes
	createQuiz, _ := r.NewOperationContext(http.MethodPost, "/api/admin/quizzes")
	createQuiz.SetSummary("Create quiz")
	createQuiz.SetDescription("Creates a new quiz. Requires admin_session cookie.")
	createQuiz.AddReqStructure(AdminQuizRequest{})
	createQuiz.AddRespStructure(quizstore.Quiz{}, openapi.WithHTTPStatus(http.StatusCreated))
	createQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createQuiz)

	// GET /api/admin/quizzes/{quizID}
	getQuiz, _ := r.NewOperationContext(http.MethodGet, "/api/admin/quizzes/{quizID}")
	getQuiz.SetSummary("Get quiz")
	getQuiz.SetDescription("Returns a quiz. Requires admin_session cookie.")
	getQuiz.AddRespStructure(quizstore.Quiz{}, openapi.WithHTTPStatus(http.StatusOK))
	getQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getQuiz)

	// PUT /api/admin/quizzes/{quizID}
	updateQuiz, _ := r.NewOperationContext(http.MethodPut, "/api/admin/quizzes/{quizID}")
	updateQuiz.SetSummary("Update quiz")
	updateQuiz.SetDescription("Updates a quiz's name and description. Requires admin_session cookie.")
	updateQuiz.AddReqStructure(AdminQuizRequest{})
	updateQuiz.AddRespStructure(quizstore.Quiz{}, openapi.WithHTTPStatus(http.StatusOK))
	updateQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updateQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updateQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updateQuiz)

	// DELETE /api/admin/quizzes/{quizID}
	deleteQuiz, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/quizzes/{quizID}")
	deleteQuiz.SetSummary("Delete quiz")
	deleteQuiz.SetDescription("Deletes a quiz and its questions and options. Requires admin_session cookie.")
	deleteQuiz.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteQuiz.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteQuiz)

	// GET /api/admin/quizzes/{quizID}/questions
	listQuestions, _ := r.NewOperationContext(http.MethodGet, "/api/admin/quizzes/{quizID}/questions")
	listQuestions.SetSummary("List questions")
	listQuestions.SetDescription("Returns a quiz's questions in play order with their options. Requires admin_session cookie.")
	listQuestions.AddRespStructure([]quizstore.Question{}, openapi.WithHTTPStatus(http.StatusOK))
	listQuestions.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	listQuestions.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listQuestions)

	// POST /api/admin/quizzes/{quizID}/questions
	createQuestion, _ := r.NewOperationContext(http.MethodPost, "/api/admin/quizzes/{quizID}/questions")
	createQuestion.SetSummary("Create question")
	createQuestion.SetDescription("Adds a question to a quiz. Range questions carry min, max, and correct values. Requires admin_session cookie.")
	createQuestion.AddReqStructure(AdminQuestionRequest{})
	createQuestion.AddRespStructure(quizstore.Question{}, openapi.WithHTTPStatus(http.StatusCreated))
	createQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	createQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createQuestion)

	// GET /api/admin/questions/{questionID}
	getQuestion, _ := r.NewOperationContext(http.MethodGet, "/api/admin/questions/{questionID}")
	getQuestion.SetSummary("Get question")
	getQuestion.SetDescription("Returns a question with its options. Requires admin_session cookie.")
	getQuestion.AddRespStructure(quizstore.Question{}, openapi.WithHTTPStatus(http.StatusOK))
	getQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getQuestion)

	// PUT /api/admin/questions/{questionID}
	updateQuestion, _ := r.NewOperationContext(http.MethodPut, "/api/admin/questions/{questionID}")
	updateQuestion.SetSummary("Update question")
	updateQuestion.SetDescription("Updates a question's text, position, type, and range values. Requires admin_session cookie.")
	updateQuestion.AddReqStructure(AdminQuestionRequest{})
	updateQuestion.AddRespStructure(quizstore.Question{}, openapi.WithHTTPStatus(http.StatusOK))
	updateQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updateQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updateQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updateQuestion)

	// DELETE /api/admin/questions/{questionID}
	deleteQuestion, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/questions/{questionID}")
	deleteQuestion.SetSummary("Delete question")
	deleteQuestion.SetDescription("Deletes a question and its options. Requires admin_session cookie.")
	deleteQuestion.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteQuestion.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteQuestion)

	// POST /api/admin/questions/{questionID}/options
	createOption, _ := r.NewOperationContext(http.MethodPost, "/api/admin/questions/{questionID}/options")
	createOption.SetSummary("Create option")
	createOption.SetDescription("Adds an answer option to a question. Requires admin_session cookie.")
	createOption.AddReqStructure(AdminOptionRequest{})
	createOption.AddRespStructure(quizstore.Option{}, openapi.WithHTTPStatus(http.StatusCreated))
	createOption.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createOption.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	createOption.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createOption)

	// PUT /api/admin/options/{optionID}
	updateOption, _ := r.NewOperationContext(http.MethodPut, "/api/admin/options/{optionID}")
	updateOption.SetSummary("Update option")
	updateOption.SetDescription("Updates an option's text and correctness. Requires admin_session cookie.")
	updateOption.AddReqStructure(AdminOptionRequest{})
	updateOption.AddRespStructure(quizstore.Option{}, openapi.WithHTTPStatus(http.StatusOK))
	updateOption.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	updateOption.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	updateOption.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(updateOption)

	// DELETE /api/admin/options/{optionID}
	deleteOption, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/options/{optionID}")
	deleteOption.SetSummary("Delete option")
	deleteOption.SetDescription("Deletes an option. Requires admin_session cookie.")
	deleteOption.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteOption.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteOption.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteOption)

	// GET /api/admin/games
	listGames, _ := r.NewOperationContext(http.MethodGet, "/api/admin/games")
	listGames.SetSummary("List games")
	listGames.SetDescription("Returns every live game session with team and player counts. Requires admin_session cookie.")
	listGames.AddRespStructure([]game.Summary{}, openapi.WithHTTPStatus(http.StatusOK))
	listGames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listGames)

	// POST /api/admin/games
	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/admin/games")
	createGame.SetSummary("Create game")
	createGame.SetDescription("Starts a new live session for a quiz and returns its join code. Requires admin_session cookie.")
	createGame.AddReqStructure(AdminGameRequest{})
	createGame.AddRespStructure(game.Summary{}, openapi.WithHTTPStatus(http.StatusCreated))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(createGame)

	// GET /api/admin/games/{gameID}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/admin/games/{gameID}")
	getGame.SetSummary("Get game")
	getGame.SetDescription("Returns the full game state including per-player scores. Requires admin_session cookie.")
	getGame.AddRespStructure(game.Detail{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getGame)

	// POST /api/admin/games/{gameID}/advance
	advanceGame, _ := r.NewOperationContext(http.MethodPost, "/api/admin/games/{gameID}/advance")
	advanceGame.SetSummary("Advance game")
	advanceGame.SetDescription("Moves the game to its next phase: serves the next question, reveals results, or ends the game. Requires admin_session cookie.")
	advanceGame.AddRespStructure(AdvanceResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	advanceGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	advanceGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(advanceGame)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
