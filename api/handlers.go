package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hoshinonyaruko/block-in-im/board"
	"github.com/hoshinonyaruko/block-in-im/game"
	"github.com/hoshinonyaruko/block-in-im/sqlite"
	"github.com/hoshinonyaruko/block-in-im/structs"
)

func (s *Server) NewGameHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		sess, created, err := s.session(groupID, true)
		if err != nil {
			s.sessionError(c, err)
			return
		}
		if !created {
			if err := sess.Controller.Restart(); err != nil {
				s.logger.Error().Err(err).Str("group", groupID).Msg("restart game")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restart game"})
				return
			}
		}
		c.JSON(http.StatusOK, toState(groupID, sess.Controller.View()))
	}
}

func (s *Server) PlaceHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		pieceID, errPiece := strconv.ParseUint(c.Query("piece"), 10, 64)
		x, errX := strconv.Atoi(c.Query("x"))
		y, errY := strconv.Atoi(c.Query("y"))
		if errPiece != nil || errX != nil || errY != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid query parameters: piece, x, y"})
			return
		}

		sess, _, err := s.session(groupID, false)
		if err != nil {
			s.sessionError(c, err)
			return
		}

		res, err := sess.Controller.Place(pieceID, x, y)
		switch {
		case err == nil:
		case game.IsRejection(err):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": rejectionReason(err)})
			return
		case errors.Is(err, game.ErrGameOver):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": "game_over"})
			return
		case errors.Is(err, game.ErrUnknownPiece):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		default:
			s.logger.Error().Err(err).Str("group", groupID).Msg("place piece")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place piece"})
			return
		}

		out := structs.PlaceResult{
			Cells:       toPositions(res.Cells),
			RowsCleared: nonNil(res.Lines.Rows),
			ColsCleared: nonNil(res.Lines.Columns),
			Lines:       res.Lines.Count(),
			Gained:      res.Placed + res.Cleared,
			State:       toState(groupID, sess.Controller.View()),
		}
		c.JSON(http.StatusOK, out)
	}
}

func (s *Server) StateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		sess, _, err := s.session(groupID, false)
		if err != nil {
			s.sessionError(c, err)
			return
		}
		c.JSON(http.StatusOK, toState(groupID, sess.Controller.View()))
	}
}

func (s *Server) HintHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		sess, _, err := s.session(groupID, false)
		if err != nil {
			s.sessionError(c, err)
			return
		}
		m, ok := sess.Controller.Hint()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "No legal move"})
			return
		}
		c.JSON(http.StatusOK, structs.Hint{PieceID: m.Piece.ID, X: m.X, Y: m.Y})
	}
}

func (s *Server) RenderMapHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		sess, _, err := s.session(groupID, c.Query("create") == "1")
		if err != nil {
			s.sessionError(c, err)
			return
		}
		if err := s.renderer.SavePNG(sess.Controller.View(), s.imagePath(groupID)); err != nil {
			s.logger.Error().Err(err).Str("group", groupID).Msg("render map")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to render map"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"image_url": s.imageURL(groupID)})
	}
}

// EventsHandler 以 SSE 推送分数、连击、最高分和结束通知
func (s *Server) EventsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		groupID := c.Query("groupid")
		sess, _, err := s.session(groupID, false)
		if err != nil {
			s.sessionError(c, err)
			return
		}
		ch, cancel := sess.Bus.Channel(16)
		defer cancel()

		c.Stream(func(w io.Writer) bool {
			select {
			case e, ok := <-ch:
				if !ok {
					return false
				}
				c.SSEvent(e.Kind.String(), e)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}

func (s *Server) LeaderboardHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.db == nil {
			c.JSON(http.StatusOK, gin.H{"scores": []sqlite.NamespaceScore{}})
			return
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		top, err := sqlite.TopScores(s.db, limit)
		if err != nil {
			s.logger.Error().Err(err).Msg("leaderboard")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load leaderboard"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"scores": top})
	}
}

func (s *Server) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errBadGroupID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errNoGame):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		s.logger.Error().Err(err).Msg("session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch or create game"})
	}
}

func rejectionReason(err error) string {
	if errors.Is(err, board.ErrOutOfBounds) {
		return "out_of_bounds"
	}
	return "cell_occupied"
}

func nonNil(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
