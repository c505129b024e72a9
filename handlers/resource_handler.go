package handlers

import (
	"encoding/json"
	"strings"

	"github.com/anjiri1684/tutor_orm/client"
	"github.com/anjiri1684/tutor_orm/query"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// resource serves the data endpoints of one model.
type resource[M any, W query.Condition, U query.UniqueCondition, F ~string] struct {
	h    *Handler
	pick func(*client.Client) *client.Delegate[M, W, U, F]
	byID func(uuid.UUID) U
}

func mount[M any, W query.Condition, U query.UniqueCondition, F ~string](
	r fiber.Router,
	h *Handler,
	path string,
	pick func(*client.Client) *client.Delegate[M, W, U, F],
	byID func(uuid.UUID) U,
) {
	res := &resource[M, W, U, F]{h: h, pick: pick, byID: byID}
	g := r.Group(path)
	g.Post("/query", res.findMany)
	g.Post("/first", res.findFirst)
	g.Post("/count", res.count)
	g.Post("/aggregate", res.aggregate)
	g.Post("/group-by", res.groupBy)
	g.Post("/many", res.createMany)
	g.Put("/upsert", res.upsert)
	g.Post("", res.create)
	g.Patch("", res.updateMany)
	g.Delete("", res.deleteMany)
	g.Get("/:id", res.findUnique)
	g.Patch("/:id", res.update)
	g.Delete("/:id", res.delete)
}

func (r *resource[M, W, U, F]) delegate(c *fiber.Ctx) (*client.Delegate[M, W, U, F], error) {
	db, err := r.h.scoped(c)
	if err != nil {
		return nil, err
	}
	return r.pick(db), nil
}

func (r *resource[M, W, U, F]) id(c *fiber.Ctx) (U, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		var zero U
		return zero, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return r.byID(id), nil
}

// includes reads ?include=a,b into top level relation includes.
func includes(c *fiber.Ctx) []query.Include {
	raw := c.Query("include")
	if raw == "" {
		return nil
	}
	var out []query.Include
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, query.Include{Relation: name})
		}
	}
	return out
}

func (r *resource[M, W, U, F]) findUnique(c *fiber.Ctx) error {
	d, err := r.delegate(c)
	if err != nil {
		return fail(c, err)
	}
	where, err := r.id(c)
	if err != nil {
		return fail(c, err)
	}
	row, err := d.FindUniqueOrThrow(c.UserContext(), query.FindUniqueArgs[U, F]{Where: where, Include: includes(c)})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(row)
}

func (r *resource[M, W, U, F]) findMany(c *fiber.Ctx) error {
	d, err := r.delegate(c)
	if err != nil {
		return fail(c, err)
	}
	var args query.FindManyArgs[W, U, F]
	if err := decode(c, &args); err != nil {
		return fail(c, err)
	}
	rows, err := d.FindMany(c.UserContext(), args)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"data": rows, "count": len(rows)})
}

func (r *resource[M, W, U, F]) findFirst(c *fiber.Ctx) error {
	d, err := r.delegate(c)
	if err != nil {
		return fail(c, err)
	}
	var args query.FindManyArgs[W, U, F]
	if err := decode(c, &args); err != nil {
		return fail(c, err)
	}
	row, err := d.FindFirstOrThrow(c.UserContext(), args)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(row)
}

func (r *resource[M, W, U, F]) count(c *fiber.Ctx) error {
	d, err := r.delegate(c)
	if err != nil {
		return fail(c, err)
	}
	var args query.CountArgs[W, U, F]
	if err := decode(c, &args); err != nil {
		return fail(c, err)
	}
	n, err := d.Count(c.UserContext(), args)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"count": n})
}

func (r *resource[M, W, U, F]) aggregate(c *fiber.Ctx) error {
	d, err := r.delegate(c)
	if err != nil {
		return fail(c, err)
	}
	var args query.AggregateArgs[W, U, F]
	if err := decode(c, &args); err != nil {
		return fail(c, err)
	}
	res, err := d.Aggregate(c.UserContext(), args)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(res)
}

func (r *resource[M, W, U, F]) groupBy(c *fiber.Ctx) error {
	d, err := r.delegate(c)
	if err != nil {
		return fail(c, err)
	}
	var args query.GroupByArgs[W, F]
	if err := decode(c, &args); err != nil {
		return fail(c, err)
	}
	rows, err := d.GroupBy(c.UserContext(), args)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rows)
}

func (r *resource[M, W, U, F]) create(c *fiber.Ctx) error {
	d, err := r.delegate(c)
	if err != nil {
		return fail(c, err)
	}
	data := fresh[M]()
	if err := decode(c, data); err != nil {
		return fail(c, err)
	}
	if err := validate.Struct(data); err != nil {
		return fail(c, err)
	}
	row, err := d.Create(c.UserContext(), data)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

type createManyRequest struct {
	Data           []json.RawMessage `json:"data"`
	SkipDuplicates bool              `json:"skipDuplicates"`
}

func (r *resource[M, W, U, F]) createMany(c *fiber.Ctx) error {
	d, err := r.delegate(c)
	if err != nil {
		return fail(c, err)
	}
	var req createManyRequest
	if err := decode(c, &req); err != nil {
		return fail(c, err)
	}
	rows := make([]M, len(req.Data))
	for i, raw := range req.Data {
		row := fresh[M]()
		if err := json.Unmarshal(raw, row); err != nil {
			return fail(c, fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON"))
		}
		if err := validate.Struct(row); err != nil {
			return fail(c, err)
		}
		rows[i] = *row
	}
	n, err := d.CreateMany(c.UserContext(), rows, req.SkipDuplicates)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"count": n})
}

func (r *resource[M, W, U, F]) update(c *fiber.Ctx) error {
	d, err := r.delegate(c)
	if err != nil {
		return fail(c, err)
	}
	where, err := r.id(c)
	if err != nil {
		return fail(c, err)
	}
	data, err := query.ParseAssignments[F](c.Body())
	if err != nil {
		return fail(c, err)
	}
	row, err := d.Update(c.UserContext(), where, data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(row)
}

type updateManyRequest[W any] struct {
	Where *W              `json:"where"`
	Data  json.RawMessage `json:"data"`
}

func (r *resource[M, W, U, F]) updateMany(c *fiber.Ctx) error {
	d, err := r.delegate(c)
	if err != nil {
		return fail(c, err)
	}
	var req updateManyRequest[W]
	if err := decode(c, &req); err != nil {
		return fail(c, err)
	}
	data, err := query.ParseAssignments[F](req.Data)
	if err != nil {
		return fail(c, err)
	}
	n, err := d.UpdateMany(c.UserContext(), req.Where, data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"count": n})
}

type upsertRequest[U any] struct {
	Where  U               `json:"where"`
	Create json.RawMessage `json:"create"`
	Update json.RawMessage `json:"update"`
}

func (r *resource[M, W, U, F]) upsert(c *fiber.Ctx) error {
	d, err := r.delegate(c)
	if err != nil {
		return fail(c, err)
	}
	var req upsertRequest[U]
	if err := decode(c, &req); err != nil {
		return fail(c, err)
	}
	if len(req.Create) == 0 || string(req.Create) == "null" {
		return fail(c, fiber.NewError(fiber.StatusBadRequest, "create is required"))
	}
	create := fresh[M]()
	if err := json.Unmarshal(req.Create, create); err != nil {
		return fail(c, fiber.NewError(fiber.StatusBadRequest, "Cannot parse JSON"))
	}
	if err := validate.Struct(create); err != nil {
		return fail(c, err)
	}
	data, err := query.ParseAssignments[F](req.Update)
	if err != nil {
		return fail(c, err)
	}
	row, err := d.Upsert(c.UserContext(), req.Where, create, data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(row)
}

func (r *resource[M, W, U, F]) delete(c *fiber.Ctx) error {
	d, err := r.delegate(c)
	if err != nil {
		return fail(c, err)
	}
	where, err := r.id(c)
	if err != nil {
		return fail(c, err)
	}
	row, err := d.Delete(c.UserContext(), where)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(row)
}

type deleteManyRequest[W any] struct {
	Where *W `json:"where"`
}

func (r *resource[M, W, U, F]) deleteMany(c *fiber.Ctx) error {
	d, err := r.delegate(c)
	if err != nil {
		return fail(c, err)
	}
	var req deleteManyRequest[W]
	if err := decode(c, &req); err != nil {
		return fail(c, err)
	}
	n, err := d.DeleteMany(c.UserContext(), req.Where)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"count": n})
}
