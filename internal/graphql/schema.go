// Package graphql exposes the employer search surface over GraphQL,
// mirroring the REST semantics: same filters, same ranking, same quota
// gate.
package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"jobboard/internal/model"
	"jobboard/internal/repository"
	"jobboard/internal/service"
)

// Services bundles what the resolvers need.
type Services struct {
	Search  service.SearchService
	Lookups service.LookupService
}

var statusCountType = graphql.NewObject(graphql.ObjectConfig{
	Name: "StatusCount",
	Fields: graphql.Fields{
		"status": &graphql.Field{Type: graphql.String},
		"count":  &graphql.Field{Type: graphql.Int},
	},
})

var candidateType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Candidate",
	Fields: graphql.Fields{
		"id":                 &graphql.Field{Type: graphql.String},
		"name":               &graphql.Field{Type: graphql.String},
		"title":              &graphql.Field{Type: graphql.String},
		"gender":             &graphql.Field{Type: graphql.String},
		"industry":           &graphql.Field{Type: graphql.String},
		"skills":             &graphql.Field{Type: graphql.NewList(graphql.String)},
		"preferredLocations": &graphql.Field{Type: graphql.NewList(graphql.String), Resolve: fieldOf(func(c model.Candidate) any { return c.PreferredLocations })},
		"jobType":            &graphql.Field{Type: graphql.String, Resolve: fieldOf(func(c model.Candidate) any { return c.JobType })},
		"expectedSalary":     &graphql.Field{Type: graphql.Int, Resolve: fieldOf(func(c model.Candidate) any { return int(c.ExpectedSalary) })},
		"experienceYears":    &graphql.Field{Type: graphql.Float, Resolve: fieldOf(func(c model.Candidate) any { return c.ExperienceYears })},
		"degree":             &graphql.Field{Type: graphql.String},
		"resumeUrl":          &graphql.Field{Type: graphql.String, Resolve: fieldOf(func(c model.Candidate) any { return c.ResumeURL })},
	},
})

var candidatePageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CandidatePage",
	Fields: graphql.Fields{
		"data":  &graphql.Field{Type: graphql.NewList(candidateType)},
		"total": &graphql.Field{Type: graphql.Int},
		"page":  &graphql.Field{Type: graphql.Int},
		"limit": &graphql.Field{Type: graphql.Int},
		"statusCounts": &graphql.Field{
			Type: graphql.NewList(statusCountType),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				res, ok := p.Source.(*service.CandidateSearchResult)
				if !ok || res.StatusCounts == nil {
					return nil, nil
				}
				return countList(res.StatusCounts), nil
			},
		},
	},
})

var applicationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Application",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.String},
		"jobId":       &graphql.Field{Type: graphql.String, Resolve: appField(func(a model.Application) any { return a.JobID })},
		"candidateId": &graphql.Field{Type: graphql.String, Resolve: appField(func(a model.Application) any { return a.CandidateID })},
		"status":      &graphql.Field{Type: graphql.String},
	},
})

var applicationPageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ApplicationPage",
	Fields: graphql.Fields{
		"data":  &graphql.Field{Type: graphql.NewList(applicationType)},
		"total": &graphql.Field{Type: graphql.Int},
		"page":  &graphql.Field{Type: graphql.Int},
		"limit": &graphql.Field{Type: graphql.Int},
		"statusCounts": &graphql.Field{
			Type: graphql.NewList(statusCountType),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				res, ok := p.Source.(*service.ApplicationSearchResult)
				if !ok {
					return nil, nil
				}
				return countList(res.StatusCounts), nil
			},
		},
	},
})

var lookupType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Lookup",
	Fields: graphql.Fields{
		"id":    &graphql.Field{Type: graphql.String},
		"kind":  &graphql.Field{Type: graphql.String},
		"value": &graphql.Field{Type: graphql.String},
		"label": &graphql.Field{Type: graphql.String},
	},
})

var lookupPageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "LookupPage",
	Fields: graphql.Fields{
		"data":  &graphql.Field{Type: graphql.NewList(lookupType)},
		"total": &graphql.Field{Type: graphql.Int},
	},
})

// NewSchema builds the executable schema over the injected services.
func NewSchema(svcs Services) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"candidateSearch": &graphql.Field{
				Type: candidatePageType,
				Args: graphql.FieldConfigArgument{
					"skills":        &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"location":      &graphql.ArgumentConfig{Type: graphql.String},
					"jobTitle":      &graphql.ArgumentConfig{Type: graphql.String},
					"jobType":       &graphql.ArgumentConfig{Type: graphql.String},
					"degree":        &graphql.ArgumentConfig{Type: graphql.String},
					"gender":        &graphql.ArgumentConfig{Type: graphql.String},
					"salaryMin":     &graphql.ArgumentConfig{Type: graphql.Int},
					"salaryMax":     &graphql.ArgumentConfig{Type: graphql.Int},
					"experienceMin": &graphql.ArgumentConfig{Type: graphql.Float},
					"experienceMax": &graphql.ArgumentConfig{Type: graphql.Float},
					"ageMin":        &graphql.ArgumentConfig{Type: graphql.Int},
					"ageMax":        &graphql.ArgumentConfig{Type: graphql.Int},
					"freshness":     &graphql.ArgumentConfig{Type: graphql.String},
					"employerId":    &graphql.ArgumentConfig{Type: graphql.String},
					"status":        &graphql.ArgumentConfig{Type: graphql.String},
					"page":          &graphql.ArgumentConfig{Type: graphql.Int},
					"limit":         &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					q := candidateQueryFromArgs(p.Args)
					page, _ := p.Args["page"].(int)
					limit, _ := p.Args["limit"].(int)
					return svcs.Search.Candidates(p.Context, q, page, limit)
				},
			},
			"applicationSearch": &graphql.Field{
				Type: applicationPageType,
				Args: graphql.FieldConfigArgument{
					"employerId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"jobId":      &graphql.ArgumentConfig{Type: graphql.String},
					"status":     &graphql.ArgumentConfig{Type: graphql.String},
					"skills":     &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"location":   &graphql.ArgumentConfig{Type: graphql.String},
					"page":       &graphql.ArgumentConfig{Type: graphql.Int},
					"limit":      &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					q := repository.ApplicationQuery{
						EmployerID: stringArg(p.Args, "employerId"),
						JobID:      stringArg(p.Args, "jobId"),
						Status:     stringArg(p.Args, "status"),
						Skills:     stringListArg(p.Args, "skills"),
						Location:   stringArg(p.Args, "location"),
					}
					page, _ := p.Args["page"].(int)
					limit, _ := p.Args["limit"].(int)
					return svcs.Search.Applications(p.Context, q, page, limit)
				},
			},
			"lookupSearch": &graphql.Field{
				Type: lookupPageType,
				Args: graphql.FieldConfigArgument{
					"kind":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"search": &graphql.ArgumentConfig{Type: graphql.String},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					limit, _ := p.Args["limit"].(int)
					offset, _ := p.Args["offset"].(int)
					res, err := svcs.Lookups.List(p.Context, repository.LookupQuery{
						Kind:   stringArg(p.Args, "kind"),
						Search: stringArg(p.Args, "search"),
						Limit:  limit,
						Offset: offset,
					})
					if err != nil {
						return nil, err
					}
					return map[string]any{"data": res.Items, "total": res.Total}, nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"updateCandidateStatus": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"candidateId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"employerId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"status":      &graphql.ArgumentConfig{Type: graphql.String},
					"action":      &graphql.ArgumentConfig{Type: graphql.String},
					"message":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					err := svcs.Search.UpdateCandidateStatus(p.Context, service.StatusUpdate{
						CandidateID: stringArg(p.Args, "candidateId"),
						RecruiterID: stringArg(p.Args, "employerId"),
						Status:      stringArg(p.Args, "status"),
						Action:      stringArg(p.Args, "action"),
						Message:     stringArg(p.Args, "message"),
					})
					if err != nil {
						return false, err
					}
					return true, nil
				},
			},
			"createLookup": &graphql.Field{
				Type: lookupType,
				Args: graphql.FieldConfigArgument{
					"kind":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"value": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"label": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return svcs.Lookups.Create(p.Context,
						stringArg(p.Args, "kind"),
						stringArg(p.Args, "value"),
						stringArg(p.Args, "label"))
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("build schema: %w", err)
	}
	return schema, nil
}

func fieldOf(get func(model.Candidate) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		if c, ok := p.Source.(model.Candidate); ok {
			return get(c), nil
		}
		return nil, nil
	}
}

func appField(get func(model.Application) any) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		if a, ok := p.Source.(model.Application); ok {
			return get(a), nil
		}
		return nil, nil
	}
}

func countList(counts map[string]int) []map[string]any {
	out := make([]map[string]any, 0, len(counts))
	for status, count := range counts {
		out = append(out, map[string]any{"status": status, "count": count})
	}
	return out
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}

func stringListArg(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
